// Package export serializes a ledger snapshot to XML and reads it back. The
// document lists tables in dependency order, so any export can be fed
// straight into a full or incremental import. Every record read from XML
// passes through its model builder, so a malformed document is rejected with
// a validation error instead of producing a half-formed record.
package export

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmoiseev/moneta/internal/models"
)

const dateLayout = "2006-01-02"

// moneyFile is the XML document root. Table order matches the import
// dependency order.
type moneyFile struct {
	XMLName      xml.Name         `xml:"Money"`
	Icons        []xmlIcon        `xml:"Icons>Icon"`
	Categories   []xmlCategory    `xml:"Categories>Category"`
	Currencies   []xmlCurrency    `xml:"Currencies>Currency"`
	Accounts     []xmlAccount     `xml:"Accounts>Account"`
	Contacts     []xmlContact     `xml:"Contacts>Contact"`
	Transactions []xmlTransaction `xml:"Transactions>Transaction"`
}

type xmlIcon struct {
	UUID     string `xml:"uuid"`
	Name     string `xml:"name"`
	Bytes    string `xml:"bytes"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type xmlCategory struct {
	Name     string `xml:"name"`
	Comment  string `xml:"comment"`
	Type     string `xml:"type"`
	IconUUID string `xml:"iconUuid"`
	UUID     string `xml:"guid"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type xmlCurrency struct {
	Symbol               string `xml:"symbol"`
	Description          string `xml:"description"`
	FormatSymbol         string `xml:"formatSymbol"`
	FormatSymbolPosition int    `xml:"formatSymbolPosition"`
	ShowFormatSymbol     bool   `xml:"showFormatSymbol"`
	Default              bool   `xml:"default"`
	Rate                 string `xml:"rate"`
	Direction            int    `xml:"direction"`
	UseThousandSeparator bool   `xml:"useThousandSeparator"`
	UUID                 string `xml:"guid"`
	Created              int64  `xml:"created"`
	Modified             int64  `xml:"modified"`
}

type xmlContact struct {
	Name     string `xml:"name"`
	Type     string `xml:"type"`
	Phone    string `xml:"phone"`
	Mobile   string `xml:"mobile"`
	Email    string `xml:"email"`
	Web      string `xml:"web"`
	Comment  string `xml:"comment"`
	Street   string `xml:"street"`
	City     string `xml:"city"`
	Country  string `xml:"country"`
	ZIP      string `xml:"zip"`
	IconUUID string `xml:"iconUuid"`
	UUID     string `xml:"guid"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type xmlAccount struct {
	Name           string `xml:"name"`
	Comment        string `xml:"comment"`
	AccountNumber  string `xml:"accountNumber"`
	OpeningBalance string `xml:"openingBalance"`
	AccountLimit   string `xml:"accountLimit"`
	CurrencyRate   string `xml:"currencyRate"`
	Type           string `xml:"type"`
	CategoryUUID   string `xml:"categoryUuid"`
	CurrencyUUID   string `xml:"currencyUuid"`
	SecurityUUID   string `xml:"securityUuid"`
	Enabled        bool   `xml:"enabled"`
	Interest       string `xml:"interest"`
	ClosingDate    string `xml:"closingDate"`
	IconUUID       string `xml:"iconUuid"`
	CardType       string `xml:"cardType"`
	CardNumber     string `xml:"cardNumber"`
	UUID           string `xml:"guid"`
	Created        int64  `xml:"created"`
	Modified       int64  `xml:"modified"`
}

type xmlTransaction struct {
	Amount                      string `xml:"amount"`
	CreditAmount                string `xml:"creditAmount"`
	Date                        string `xml:"date"`
	Type                        string `xml:"type"`
	Comment                     string `xml:"comment"`
	Checked                     bool   `xml:"checked"`
	AccountDebitedUUID          string `xml:"accountDebitedUuid"`
	AccountCreditedUUID         string `xml:"accountCreditedUuid"`
	AccountDebitedType          string `xml:"accountDebitedType"`
	AccountCreditedType         string `xml:"accountCreditedType"`
	AccountDebitedCategoryUUID  string `xml:"accountDebitedCategoryUuid"`
	AccountCreditedCategoryUUID string `xml:"accountCreditedCategoryUuid"`
	ContactUUID                 string `xml:"contactUuid"`
	Rate                        string `xml:"rate"`
	RateDirection               int    `xml:"rateDirection"`
	InvoiceNumber               string `xml:"invoiceNumber"`
	ParentUUID                  string `xml:"parentUuid"`
	Detailed                    bool   `xml:"detailed"`
	StatementDate               string `xml:"statementDate"`
	UUID                        string `xml:"guid"`
	Created                     int64  `xml:"created"`
	Modified                    int64  `xml:"modified"`
}

func encodeUUID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func decodeUUID(field, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s uuid %q: %w", field, s, err)
	}
	return id, nil
}

func decodeDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s amount %q: %w", field, s, err)
	}
	return d, nil
}

func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func decodeDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: %w", field, s, err)
	}
	return t, nil
}

// Write serializes the snapshot as an XML document.
func Write(w io.Writer, snap *models.Snapshot) error {
	file := moneyFile{}

	for _, r := range snap.Icons {
		file.Icons = append(file.Icons, xmlIcon{
			UUID:     r.UUID.String(),
			Name:     r.Name,
			Bytes:    base64.StdEncoding.EncodeToString(r.Bytes),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}
	for _, r := range snap.Categories {
		file.Categories = append(file.Categories, xmlCategory{
			Name:     r.Name,
			Comment:  r.Comment,
			Type:     string(r.Type),
			IconUUID: encodeUUID(r.IconUUID),
			UUID:     r.UUID.String(),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}
	for _, r := range snap.Currencies {
		file.Currencies = append(file.Currencies, xmlCurrency{
			Symbol:               r.Symbol,
			Description:          r.Description,
			FormatSymbol:         r.FormatSymbol,
			FormatSymbolPosition: r.FormatSymbolPosition,
			ShowFormatSymbol:     r.ShowFormatSymbol,
			Default:              r.Default,
			Rate:                 r.Rate.String(),
			Direction:            r.Direction,
			UseThousandSeparator: r.UseThousandSeparator,
			UUID:                 r.UUID.String(),
			Created:              r.Created,
			Modified:             r.Modified,
		})
	}
	for _, r := range snap.Accounts {
		file.Accounts = append(file.Accounts, xmlAccount{
			Name:           r.Name,
			Comment:        r.Comment,
			AccountNumber:  r.AccountNumber,
			OpeningBalance: r.OpeningBalance.String(),
			AccountLimit:   r.AccountLimit.String(),
			CurrencyRate:   r.CurrencyRate.String(),
			Type:           string(r.Type),
			CategoryUUID:   encodeUUID(r.CategoryUUID),
			CurrencyUUID:   encodeUUID(r.CurrencyUUID),
			SecurityUUID:   encodeUUID(r.SecurityUUID),
			Enabled:        r.Enabled,
			Interest:       r.Interest.String(),
			ClosingDate:    encodeDate(r.ClosingDate),
			IconUUID:       encodeUUID(r.IconUUID),
			CardType:       string(r.CardType),
			CardNumber:     r.CardNumber,
			UUID:           r.UUID.String(),
			Created:        r.Created,
			Modified:       r.Modified,
		})
	}
	for _, r := range snap.Contacts {
		file.Contacts = append(file.Contacts, xmlContact{
			Name:     r.Name,
			Type:     string(r.Type),
			Phone:    r.Phone,
			Mobile:   r.Mobile,
			Email:    r.Email,
			Web:      r.Web,
			Comment:  r.Comment,
			Street:   r.Street,
			City:     r.City,
			Country:  r.Country,
			ZIP:      r.Zip,
			IconUUID: encodeUUID(r.IconUUID),
			UUID:     r.UUID.String(),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}
	// Top-level transactions precede split children so the document imports
	// in one pass.
	txs := append(snap.TopLevelTransactions(), snap.ChildTransactions()...)
	for _, r := range txs {
		file.Transactions = append(file.Transactions, xmlTransaction{
			Amount:                      r.Amount.String(),
			CreditAmount:                r.CreditAmount.String(),
			Date:                        encodeDate(r.Date),
			Type:                        string(r.Type),
			Comment:                     r.Comment,
			Checked:                     r.Checked,
			AccountDebitedUUID:          r.AccountDebitedUUID.String(),
			AccountCreditedUUID:         r.AccountCreditedUUID.String(),
			AccountDebitedType:          string(r.AccountDebitedType),
			AccountCreditedType:         string(r.AccountCreditedType),
			AccountDebitedCategoryUUID:  encodeUUID(r.AccountDebitedCategoryUUID),
			AccountCreditedCategoryUUID: encodeUUID(r.AccountCreditedCategoryUUID),
			ContactUUID:                 encodeUUID(r.ContactUUID),
			Rate:                        r.Rate.String(),
			RateDirection:               r.RateDirection,
			InvoiceNumber:               r.InvoiceNumber,
			ParentUUID:                  encodeUUID(r.ParentUUID),
			Detailed:                    r.Detailed,
			StatementDate:               encodeDate(r.StatementDate),
			UUID:                        r.UUID.String(),
			Created:                     r.Created,
			Modified:                    r.Modified,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return enc.Close()
}
