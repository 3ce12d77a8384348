package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for run-aborting failure categories
var (
	ErrTagFetch   = goerr.NewTag("fetch")
	ErrTagPublish = goerr.NewTag("publish")
	ErrTagLLM     = goerr.NewTag("llm")
)

// Sentinel errors for domain operations
var (
	ErrCategoryNotFound = goerr.New("discussion category not found")
	ErrRepoMismatch     = goerr.New("item belongs to another repository")
)
