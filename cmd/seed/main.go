// Command seed fills a development database with fake users, posts,
// and comments.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of users to create")
	posts := flag.Int("posts", seed.DefaultOptions.Posts, "number of posts to create")
	comments := flag.Int("comments", seed.DefaultOptions.CommentsPerPost, "comments per post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(context.Background(),
		repository.NewUserRepository(db),
		repository.NewPostRepository(db, cfg.CascadeCommentDelete),
		repository.NewCommentRepository(db),
		seed.Options{Users: *users, Posts: *posts, CommentsPerPost: *comments},
	)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
