package service

import (
	"github.com/dom/hero-builds/internal/repository"
)

type Services struct {
	Catalog *CatalogService
	Dedup   *DedupService
}

func NewServices(store repository.TableStore) *Services {
	return &Services{
		Catalog: NewCatalogService(store),
		Dedup:   NewDedupService(store),
	}
}
