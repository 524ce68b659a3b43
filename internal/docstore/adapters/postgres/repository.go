package postgres

import (
	"notegrid/internal/docstore/ports/repositories"
	"notegrid/pkg/db/postgres"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	db postgres.Querier
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db postgres.Querier) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// DocumentRepository возвращает репозиторий документов.
func (f *RepositoryFactory) DocumentRepository() repositories.DocumentRepository {
	return NewDocumentRepository(f.db)
}
