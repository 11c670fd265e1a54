package export

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pmoiseev/moneta/internal/models"
)

// Read parses an XML export back into a snapshot. Every record is rebuilt
// through its model builder, so the result carries only validated records.
func Read(r io.Reader) (*models.Snapshot, error) {
	var file moneyFile
	if err := xml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	snap := &models.Snapshot{}

	for _, x := range file.Icons {
		rec, err := readIcon(x)
		if err != nil {
			return nil, err
		}
		snap.Icons = append(snap.Icons, rec)
	}
	for _, x := range file.Categories {
		rec, err := readCategory(x)
		if err != nil {
			return nil, err
		}
		snap.Categories = append(snap.Categories, rec)
	}
	for _, x := range file.Currencies {
		rec, err := readCurrency(x)
		if err != nil {
			return nil, err
		}
		snap.Currencies = append(snap.Currencies, rec)
	}
	for _, x := range file.Accounts {
		rec, err := readAccount(x)
		if err != nil {
			return nil, err
		}
		snap.Accounts = append(snap.Accounts, rec)
	}
	for _, x := range file.Contacts {
		rec, err := readContact(x)
		if err != nil {
			return nil, err
		}
		snap.Contacts = append(snap.Contacts, rec)
	}
	for _, x := range file.Transactions {
		rec, err := readTransaction(x)
		if err != nil {
			return nil, err
		}
		snap.Transactions = append(snap.Transactions, rec)
	}

	return snap, nil
}

func readIcon(x xmlIcon) (models.Icon, error) {
	id, err := decodeUUID("icon", x.UUID)
	if err != nil {
		return models.Icon{}, err
	}
	bytes, err := base64.StdEncoding.DecodeString(x.Bytes)
	if err != nil {
		return models.Icon{}, fmt.Errorf("invalid icon %s bytes: %w", x.UUID, err)
	}
	return models.IconBuilder{
		UUID:     id,
		Name:     x.Name,
		Bytes:    bytes,
		Created:  x.Created,
		Modified: x.Modified,
	}.Build()
}

func readCategory(x xmlCategory) (models.Category, error) {
	id, err := decodeUUID("category", x.UUID)
	if err != nil {
		return models.Category{}, err
	}
	iconUUID, err := decodeUUID("category icon", x.IconUUID)
	if err != nil {
		return models.Category{}, err
	}
	return models.CategoryBuilder{
		UUID:     id,
		Name:     x.Name,
		Comment:  x.Comment,
		Type:     models.CategoryType(x.Type),
		IconUUID: iconUUID,
		Created:  x.Created,
		Modified: x.Modified,
	}.Build()
}

func readCurrency(x xmlCurrency) (models.Currency, error) {
	id, err := decodeUUID("currency", x.UUID)
	if err != nil {
		return models.Currency{}, err
	}
	rate, err := decodeDecimal("currency rate", x.Rate)
	if err != nil {
		return models.Currency{}, err
	}
	return models.CurrencyBuilder{
		UUID:                 id,
		Symbol:               x.Symbol,
		Description:          x.Description,
		FormatSymbol:         x.FormatSymbol,
		FormatSymbolPosition: x.FormatSymbolPosition,
		ShowFormatSymbol:     x.ShowFormatSymbol,
		Default:              x.Default,
		Rate:                 rate,
		Direction:            x.Direction,
		UseThousandSeparator: x.UseThousandSeparator,
		Created:              x.Created,
		Modified:             x.Modified,
	}.Build()
}

func readAccount(x xmlAccount) (models.Account, error) {
	id, err := decodeUUID("account", x.UUID)
	if err != nil {
		return models.Account{}, err
	}
	categoryUUID, err := decodeUUID("account category", x.CategoryUUID)
	if err != nil {
		return models.Account{}, err
	}
	currencyUUID, err := decodeUUID("account currency", x.CurrencyUUID)
	if err != nil {
		return models.Account{}, err
	}
	securityUUID, err := decodeUUID("account security", x.SecurityUUID)
	if err != nil {
		return models.Account{}, err
	}
	iconUUID, err := decodeUUID("account icon", x.IconUUID)
	if err != nil {
		return models.Account{}, err
	}
	openingBalance, err := decodeDecimal("opening balance", x.OpeningBalance)
	if err != nil {
		return models.Account{}, err
	}
	accountLimit, err := decodeDecimal("account limit", x.AccountLimit)
	if err != nil {
		return models.Account{}, err
	}
	currencyRate, err := decodeDecimal("currency rate", x.CurrencyRate)
	if err != nil {
		return models.Account{}, err
	}
	interest, err := decodeDecimal("interest", x.Interest)
	if err != nil {
		return models.Account{}, err
	}
	closingDate, err := decodeDate("closing", x.ClosingDate)
	if err != nil {
		return models.Account{}, err
	}
	return models.AccountBuilder{
		UUID:           id,
		Name:           x.Name,
		Comment:        x.Comment,
		AccountNumber:  x.AccountNumber,
		OpeningBalance: openingBalance,
		AccountLimit:   accountLimit,
		CurrencyRate:   currencyRate,
		Type:           models.CategoryType(x.Type),
		CategoryUUID:   categoryUUID,
		CurrencyUUID:   currencyUUID,
		SecurityUUID:   securityUUID,
		Disabled:       !x.Enabled,
		Interest:       interest,
		ClosingDate:    closingDate,
		IconUUID:       iconUUID,
		CardType:       models.CardType(x.CardType),
		CardNumber:     x.CardNumber,
		Created:        x.Created,
		Modified:       x.Modified,
	}.Build()
}

func readContact(x xmlContact) (models.Contact, error) {
	id, err := decodeUUID("contact", x.UUID)
	if err != nil {
		return models.Contact{}, err
	}
	iconUUID, err := decodeUUID("contact icon", x.IconUUID)
	if err != nil {
		return models.Contact{}, err
	}
	return models.ContactBuilder{
		UUID:     id,
		Name:     x.Name,
		Type:     models.ContactType(x.Type),
		Phone:    x.Phone,
		Mobile:   x.Mobile,
		Email:    x.Email,
		Web:      x.Web,
		Comment:  x.Comment,
		Street:   x.Street,
		City:     x.City,
		Country:  x.Country,
		Zip:      x.ZIP,
		IconUUID: iconUUID,
		Created:  x.Created,
		Modified: x.Modified,
	}.Build()
}

func readTransaction(x xmlTransaction) (models.Transaction, error) {
	id, err := decodeUUID("transaction", x.UUID)
	if err != nil {
		return models.Transaction{}, err
	}
	debitedUUID, err := decodeUUID("debited account", x.AccountDebitedUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	creditedUUID, err := decodeUUID("credited account", x.AccountCreditedUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	debitedCategoryUUID, err := decodeUUID("debited category", x.AccountDebitedCategoryUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	creditedCategoryUUID, err := decodeUUID("credited category", x.AccountCreditedCategoryUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	contactUUID, err := decodeUUID("contact", x.ContactUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	parentUUID, err := decodeUUID("parent transaction", x.ParentUUID)
	if err != nil {
		return models.Transaction{}, err
	}
	amount, err := decodeDecimal("amount", x.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	creditAmount, err := decodeDecimal("credit amount", x.CreditAmount)
	if err != nil {
		return models.Transaction{}, err
	}
	rate, err := decodeDecimal("rate", x.Rate)
	if err != nil {
		return models.Transaction{}, err
	}
	date, err := decodeDate("transaction", x.Date)
	if err != nil {
		return models.Transaction{}, err
	}
	statementDate, err := decodeDate("statement", x.StatementDate)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.TransactionBuilder{
		UUID:                        id,
		Amount:                      amount,
		CreditAmount:                creditAmount,
		Date:                        date,
		Type:                        models.TransactionType(x.Type),
		Comment:                     x.Comment,
		Checked:                     x.Checked,
		AccountDebitedUUID:          debitedUUID,
		AccountCreditedUUID:         creditedUUID,
		AccountDebitedType:          models.CategoryType(x.AccountDebitedType),
		AccountCreditedType:         models.CategoryType(x.AccountCreditedType),
		AccountDebitedCategoryUUID:  debitedCategoryUUID,
		AccountCreditedCategoryUUID: creditedCategoryUUID,
		ContactUUID:                 contactUUID,
		Rate:                        rate,
		RateDirection:               x.RateDirection,
		InvoiceNumber:               x.InvoiceNumber,
		ParentUUID:                  parentUUID,
		Detailed:                    x.Detailed,
		StatementDate:               statementDate,
		Created:                     x.Created,
		Modified:                    x.Modified,
	}.Build()
}
