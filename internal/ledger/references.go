package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pmoiseev/moneta/internal/models"
)

// kindOf maps a record value to its table.
func kindOf(rec models.Record) models.Kind {
	switch rec.(type) {
	case models.Icon:
		return models.KindIcon
	case models.Category:
		return models.KindCategory
	case models.Currency:
		return models.KindCurrency
	case models.Contact:
		return models.KindContact
	case models.Account:
		return models.KindAccount
	case models.Transaction:
		return models.KindTransaction
	default:
		panic(fmt.Sprintf("unknown record type %T", rec))
	}
}

// resolver answers whether a referenced record exists in the merged view.
type resolver func(kind models.Kind, id uuid.UUID) bool

// checkReferences verifies every outbound reference of rec. A nil UUID in an
// optional field is not a reference and always passes.
func checkReferences(rec models.Record, resolve resolver) error {
	check := func(field string, kind models.Kind, id uuid.UUID) error {
		if id == uuid.Nil {
			return nil
		}
		if !resolve(kind, id) {
			return fmt.Errorf("%w: %s %s of %s %s not found",
				ErrReference, field, id, kindOf(rec), rec.Key())
		}
		return nil
	}

	switch r := rec.(type) {
	case models.Category:
		return check("icon", models.KindIcon, r.IconUUID)
	case models.Contact:
		return check("icon", models.KindIcon, r.IconUUID)
	case models.Account:
		if err := check("category", models.KindCategory, r.CategoryUUID); err != nil {
			return err
		}
		if err := check("currency", models.KindCurrency, r.CurrencyUUID); err != nil {
			return err
		}
		return check("icon", models.KindIcon, r.IconUUID)
	case models.Transaction:
		if err := check("debited account", models.KindAccount, r.AccountDebitedUUID); err != nil {
			return err
		}
		if err := check("credited account", models.KindAccount, r.AccountCreditedUUID); err != nil {
			return err
		}
		if err := check("contact", models.KindContact, r.ContactUUID); err != nil {
			return err
		}
		return check("parent transaction", models.KindTransaction, r.ParentUUID)
	}
	return nil
}
