package services

import (
	"context"

	"takvim.link/repositories"

	"gorm.io/gorm"
)

// runInTx verilen fonksiyonu tek bir transaction içinde çalıştırır ve
// transaction'ı context üzerinden repository'lere taşır. db nil ise (testlerde
// sahte repository'lerle) fonksiyon transaction'sız çalışır.
func runInTx(db *gorm.DB, ctx context.Context, fn func(txCtx context.Context, tx *gorm.DB) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(repositories.ContextWithTx(ctx, tx), tx)
	})
}
