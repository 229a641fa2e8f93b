package service

import (
	"sync"
	"testing"

	"marginalia/internal/domain/models"
)

func TestArticleLocksSerialize(t *testing.T) {
	locks := newArticleLocks()
	articleID := models.NewArticleID()

	const workers = 50
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(articleID)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestArticleLocksIndependentKeys(t *testing.T) {
	locks := newArticleLocks()
	first := models.NewArticleID()
	second := models.NewArticleID()

	unlock := locks.Lock(first)
	defer unlock()

	// A different article's lock must not block behind the first.
	done := make(chan struct{})
	go func() {
		u := locks.Lock(second)
		u()
		close(done)
	}()
	<-done
}
