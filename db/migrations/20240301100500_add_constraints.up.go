package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- prices and invoice amounts are satoshis
				alter table posts
				ADD CONSTRAINT check_post_price_not_negative
				CHECK (price >= 0);
				alter table media
				ADD CONSTRAINT check_media_price_not_negative
				CHECK (price >= 0);
				alter table payments
				ADD CONSTRAINT check_payment_amount_not_negative
				CHECK (amount >= 0);

			-- payments only reference the two resource families
				alter table payments
				ADD CONSTRAINT check_payment_resource_type
				CHECK (resource_type IN ('post', 'media'));
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
