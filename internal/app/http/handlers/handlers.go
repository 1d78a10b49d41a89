package handlers

import (
	"offr-io/go_backend/internal/app/config"
	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf"
	"offr-io/go_backend/internal/domain/quote/source"
)

type Handlers struct {
	Cfg       config.Config
	Store     quote.Store
	Source    source.Source
	Assembler *quote.Assembler
	PDF       pdf.Generator
}

func New(cfg config.Config, store quote.Store, src source.Source, asm *quote.Assembler, gen pdf.Generator) *Handlers {
	return &Handlers{
		Cfg:       cfg,
		Store:     store,
		Source:    src,
		Assembler: asm,
		PDF:       gen,
	}
}
