package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	postRepo     *PostRepo
	categoryRepo *CategoryRepo
	tagRepo      *TagRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		postRepo:     NewPostRepo(db),
		categoryRepo: NewCategoryRepo(db),
		tagRepo:      NewTagRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// RegisterReplica routes reads through a replica DSN. No-op consequences are
// acceptable when the replica matches the primary.
func RegisterReplica(db *gorm.DB, replicaDSN string) error {
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(replicaDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
}
