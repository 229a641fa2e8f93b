// Command seed loads a YAML fixture of users, articles and annotations
// into the document store for local development. Passwords in the
// fixture are plaintext and get hashed on the way in; everything else is
// created through the regular services so validation, forced privacy
// and annotation numbering all apply.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"marginalia/internal/config"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/repository/surreal"
	"marginalia/internal/service"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fixture is the shape of the seed file.
type fixture struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Articles []struct {
		Author    string `yaml:"author"`
		Title     string `yaml:"title"`
		Content   string `yaml:"content"`
		IsPrivate bool   `yaml:"is_private"`
		Publish   bool   `yaml:"publish"`

		Annotations []struct {
			Author       string `yaml:"author"`
			SelectedText string `yaml:"selected_text"`
			StartOffset  int    `yaml:"start_offset"`
			EndOffset    int    `yaml:"end_offset"`
			Notes        []struct {
				Title   string `yaml:"title"`
				Content string `yaml:"content"`
			} `yaml:"notes"`
		} `yaml:"annotations"`
	} `yaml:"articles"`
}

func main() {
	fixtureFile := flag.String("fixture", "seed.yaml", "Path to the YAML fixture file")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: refusing to seed a production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	data, err := os.ReadFile(*fixtureFile)
	if err != nil {
		log.Fatalf("Failed to read fixture: %v", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}

	ctx := context.Background()
	db, err := surreal.Connect(ctx, surreal.ConnectionConfig{
		URL:       cfg.SurrealURL,
		Namespace: cfg.SurrealNamespace,
		Database:  cfg.SurrealDatabase,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	repoConfig := &surreal.RepositoryConfig{DB: db, Logger: logger}
	accounts := service.NewAccountService(surreal.NewUserRepository(repoConfig), logger)
	articleRepo := surreal.NewArticleRepository(repoConfig)
	annotationRepo := surreal.NewAnnotationRepository(repoConfig)
	articles := service.NewArticleService(articleRepo, annotationRepo, logger)
	annotations := service.NewAnnotationService(annotationRepo, articleRepo, logger)

	// Register users; remember identities by username for the articles.
	identities := make(map[string]models.Identity)
	for _, u := range fx.Users {
		user, err := accounts.Register(ctx, &services.RegisterRequest{
			Username: u.Username,
			Password: u.Password,
		})
		if err != nil {
			log.Fatalf("Failed to register %q: %v", u.Username, err)
		}
		identities[user.Username] = models.Identity{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		}
		log.Printf("registered user %q (admin=%v)", user.Username, user.IsAdmin)
	}

	for _, a := range fx.Articles {
		author, ok := identities[a.Author]
		if !ok {
			log.Fatalf("Article %q references unknown author %q", a.Title, a.Author)
		}

		article, err := articles.Create(ctx, author, &services.CreateArticleRequest{
			Title:     a.Title,
			Content:   a.Content,
			IsPrivate: a.IsPrivate,
		})
		if err != nil {
			log.Fatalf("Failed to create article %q: %v", a.Title, err)
		}

		// Non-admin articles are born private; the fixture publishes
		// through the same one-way transition the API uses.
		if a.Publish && article.IsPrivate {
			if _, err := articles.Publish(ctx, article.ID, author); err != nil {
				log.Fatalf("Failed to publish article %q: %v", a.Title, err)
			}
		}

		for _, an := range a.Annotations {
			annAuthor, ok := identities[an.Author]
			if !ok {
				log.Fatalf("Annotation on %q references unknown author %q", a.Title, an.Author)
			}

			notes := make([]models.Note, 0, len(an.Notes))
			for _, n := range an.Notes {
				notes = append(notes, models.Note{Title: n.Title, Content: n.Content})
			}

			if _, err := annotations.Create(ctx, article.ID, annAuthor, &services.CreateAnnotationRequest{
				SelectedText: an.SelectedText,
				StartOffset:  an.StartOffset,
				EndOffset:    an.EndOffset,
				Notes:        notes,
			}); err != nil {
				log.Fatalf("Failed to annotate article %q: %v", a.Title, err)
			}
		}

		log.Printf("seeded article %q (%d annotations)", a.Title, len(a.Annotations))
	}

	log.Printf("seeding complete: %d users, %d articles", len(fx.Users), len(fx.Articles))
}
