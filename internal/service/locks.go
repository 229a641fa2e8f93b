package service

import (
	"sync"

	"marginalia/internal/domain/models"
)

// articleLocks serializes annotation create/delete per article, so the
// read-max-then-insert and delete-then-renumber sequences cannot
// interleave on the same article. Operations on different articles
// proceed independently.
//
// Entries are never evicted; one mutex per article ever annotated in
// this process is a bounded, tiny cost next to the records themselves.
type articleLocks struct {
	mu    sync.Mutex
	locks map[models.ArticleID]*sync.Mutex
}

func newArticleLocks() *articleLocks {
	return &articleLocks{locks: make(map[models.ArticleID]*sync.Mutex)}
}

// Lock acquires the article's mutex and returns the unlock function.
func (l *articleLocks) Lock(id models.ArticleID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
