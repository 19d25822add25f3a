package core

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/inovacc/ghprofile/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLanguages struct {
	stats map[string]model.LanguageStats
	err   error
	calls int
}

func (f *fakeLanguages) Languages(_ context.Context, owner, name string) (model.LanguageStats, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return f.stats[owner+"/"+name], nil
}

type fakeParents struct {
	parents map[string]string
	err     error
	calls   int
}

func (f *fakeParents) Parent(_ context.Context, detailURL string) (string, error) {
	f.calls++

	if f.err != nil {
		return "", f.err
	}

	parent, ok := f.parents[detailURL]
	if !ok {
		return "", errors.New("404 Not Found")
	}

	return parent, nil
}

type fakeSource struct {
	repos []model.Repository
	err   error
	calls int
}

func (f *fakeSource) FetchAll(context.Context) ([]model.Repository, error) {
	f.calls++

	return append([]model.Repository(nil), f.repos...), f.err
}

type fakePublisher struct {
	docs    [][]byte
	summary Summary
	err     error
	failed  *PublishResult // returned with err
}

func (f *fakePublisher) Publish(_ context.Context, doc []byte, summary Summary) (*PublishResult, error) {
	if f.err != nil {
		return f.failed, f.err
	}

	f.docs = append(f.docs, doc)
	f.summary = summary

	return &PublishResult{Path: "README.md", Changed: true, Committed: true, Pushed: true}, nil
}
