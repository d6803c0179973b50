// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) storage.ArticleRepository {
	return &ArticleRepository{
		backend: backend,
	}
}

// SaveArticle persists a published article, overwriting any previous article
// for the same thread. Sets PublishedAt if the caller left it zero.
func (r *ArticleRepository) SaveArticle(ctx context.Context, article *core.PublishedArticle) error {
	if err := core.ValidateArticle(&article.Article); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if article.PublishedAt.IsZero() {
			article.PublishedAt = time.Now().UTC()
		}
		key := makeArticleKey(article.ThreadID)
		if err := tx.Set(key, storage.MarshalPublishedArticle(article)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetArticle retrieves the published article for a thread.
// Returns storage.ErrNotFound if none exists.
func (r *ArticleRepository) GetArticle(ctx context.Context, threadID core.ID) (*core.PublishedArticle, error) {
	var article *core.PublishedArticle
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleKey(threadID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: article for thread %d", storage.ErrNotFound, threadID)
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			article, unmarshalErr = storage.UnmarshalPublishedArticle(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return article, nil
}

// ListArticles returns all published articles in ascending thread ID order.
func (r *ArticleRepository) ListArticles(ctx context.Context) ([]*core.PublishedArticle, error) {
	var articles []*core.PublishedArticle

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(articlePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				article, unmarshalErr := storage.UnmarshalPublishedArticle(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				articles = append(articles, article)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ArticleRepository) Close() error {
	return nil
}
