// Package camt053 parses ISO 20022 bank-to-customer statements
// (camt.053).
//
// Elements are matched by local name, so the document namespace is picked
// up from the file itself instead of being hard-coded to one camt.053
// revision.
package camt053

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/fundward/backend/internal/importer/parser"
	"github.com/fundward/backend/internal/importer/parser/helpers"
	"github.com/fundward/backend/internal/models"
)

const placeholderDescription = "description not found"

type document struct {
	XMLName    xml.Name    `xml:"Document"`
	Statements []statement `xml:"BkToCstmrStmt>Stmt"`
}

type statement struct {
	IBAN    string  `xml:"Acct>Id>IBAN"`
	Entries []entry `xml:"Ntry"`
}

type entry struct {
	Amount         string       `xml:"Amt"`
	CreditDebit    string       `xml:"CdtDbtInd"`
	BookingDate    string       `xml:"BookgDt>Dt"`
	AdditionalInfo string       `xml:"AddtlNtryInf"`
	Details        entryDetails `xml:"NtryDtls"`
}

type entryDetails struct {
	Batch        *batch      `xml:"Btch"`
	Transactions []txDetails `xml:"TxDtls"`
}

type batch struct {
	NumberOfTransactions string `xml:"NbOfTxs"`
}

type txDetails struct {
	Amount      string         `xml:"Amt"`
	CreditDebit string         `xml:"CdtDbtInd"`
	Parties     relatedParties `xml:"RltdPties"`
	Remittance  remittance     `xml:"RmtInf"`
	BankTxCode  bankTxCode     `xml:"BkTxCd"`
}

type relatedParties struct {
	DebtorName   string `xml:"Dbtr>Pty>Nm"`
	CreditorName string `xml:"Cdtr>Pty>Nm"`
	DebtorIBAN   string `xml:"DbtrAcct>Id>IBAN"`
	CreditorIBAN string `xml:"CdtrAcct>Id>IBAN"`
}

type remittance struct {
	Unstructured []string `xml:"Ustrd"`
	Reference    string   `xml:"Strd>CdtrRefInf>Ref"`
	Additional   []string `xml:"Strd>AddtlRmtInf"`
}

type bankTxCode struct {
	ProprietaryName string `xml:"Prtry>Nm"`
	ProprietaryCode string `xml:"Prtry>Cd"`
}

type Parser struct{}

func New() Parser {
	return Parser{}
}

func (Parser) Parse(data []byte) ([]parser.Entry, []string, error) {
	var doc document
	err := xml.Unmarshal([]byte(helpers.DecodeText(data)), &doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid XML: %v", parser.ErrParse, err)
	}

	if len(doc.Statements) == 0 {
		return nil, nil, fmt.Errorf("%w: no statement found in the document", parser.ErrParse)
	}

	var entries []parser.Entry
	var warnings []string

	for _, stmt := range doc.Statements {
		for i, ntry := range stmt.Entries {
			if ntry.Details.Batch != nil {
				// Batched booking: the booking date lives on the entry,
				// amount and description on each contained transaction
				if len(ntry.Details.Transactions) == 0 {
					warnings = append(warnings, fmt.Sprintf("entry %d: batch without transaction details", i+1))
					continue
				}

				for _, tx := range ntry.Details.Transactions {
					entry, warning := buildEntry(ntry.BookingDate, tx.Amount, tx.CreditDebit, transactionDescription(tx))
					if warning != "" {
						warnings = append(warnings, fmt.Sprintf("entry %d: %s", i+1, warning))
						continue
					}
					entries = append(entries, entry)
				}

				continue
			}

			entry, warning := buildEntry(ntry.BookingDate, ntry.Amount, ntry.CreditDebit, entryDescription(ntry))
			if warning != "" {
				warnings = append(warnings, fmt.Sprintf("entry %d: %s", i+1, warning))
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, warnings, nil
}

func buildEntry(dateStr, amountStr, creditDebit, description string) (parser.Entry, string) {
	dateStr = strings.TrimSpace(dateStr)
	amountStr = strings.TrimSpace(amountStr)
	creditDebit = strings.TrimSpace(creditDebit)

	if dateStr == "" {
		return parser.Entry{}, "booking date is missing"
	}

	if amountStr == "" || creditDebit == "" {
		return parser.Entry{}, "amount or credit/debit indicator is missing"
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return parser.Entry{}, fmt.Sprintf("invalid booking date %q", dateStr)
	}

	amount, err := helpers.ParseAmount(amountStr)
	if err != nil {
		return parser.Entry{}, fmt.Sprintf("invalid amount %q", amountStr)
	}

	entryType := models.TransactionOut
	if creditDebit == "CRDT" {
		entryType = models.TransactionIn
	}

	return parser.Entry{
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Type:        entryType,
	}, ""
}

// transactionDescription assembles the description for one transaction of
// a batched entry. Priority: counterparty name, unstructured remittance
// text, then references, bank transaction code and counterparty IBAN as
// secondary details.
func transactionDescription(tx txDetails) string {
	var main, secondary []string

	if name := counterpartyName(tx.CreditDebit, tx.Parties); name != "" {
		main = append(main, name)
	}

	for _, ustrd := range tx.Remittance.Unstructured {
		if s := strings.TrimSpace(ustrd); s != "" && !contains(main, s) {
			main = append(main, s)
		}
	}

	secondary = appendSecondary(secondary, tx.Remittance, tx.BankTxCode, counterpartyIBAN(tx.CreditDebit, tx.Parties))

	return assemble(main, secondary)
}

// entryDescription assembles the description for a non-batched entry. The
// entry-level additional info is usually the main booking text here, the
// transaction details complement it.
func entryDescription(ntry entry) string {
	var main, secondary []string

	if s := strings.TrimSpace(ntry.AdditionalInfo); s != "" {
		main = append(main, s)
	}

	var tx txDetails
	if len(ntry.Details.Transactions) > 0 {
		tx = ntry.Details.Transactions[0]
	}

	for _, ustrd := range tx.Remittance.Unstructured {
		if s := strings.TrimSpace(ustrd); s != "" && !contains(main, s) {
			main = append(main, s)
		}
	}

	if name := counterpartyName(ntry.CreditDebit, tx.Parties); name != "" && !contains(main, name) {
		main = append([]string{name}, main...)
	}

	secondary = appendSecondary(secondary, tx.Remittance, tx.BankTxCode, counterpartyIBAN(ntry.CreditDebit, tx.Parties))

	return assemble(main, secondary)
}

// counterpartyName picks the other side of the booking: for a debit the
// creditor receives the money, for a credit the debtor sent it.
func counterpartyName(creditDebit string, parties relatedParties) string {
	switch creditDebit {
	case "DBIT":
		return strings.TrimSpace(parties.CreditorName)
	case "CRDT":
		return strings.TrimSpace(parties.DebtorName)
	}
	return ""
}

func counterpartyIBAN(creditDebit string, parties relatedParties) string {
	switch creditDebit {
	case "DBIT":
		return strings.TrimSpace(parties.CreditorIBAN)
	case "CRDT":
		return strings.TrimSpace(parties.DebtorIBAN)
	}
	return ""
}

func appendSecondary(secondary []string, rmt remittance, code bankTxCode, iban string) []string {
	if s := strings.TrimSpace(rmt.Reference); s != "" {
		secondary = append(secondary, fmt.Sprintf("Ref: %s", s))
	}

	for _, addtl := range rmt.Additional {
		if s := strings.TrimSpace(addtl); s != "" {
			secondary = append(secondary, s)
		}
	}

	txCode := strings.TrimSpace(code.ProprietaryName)
	if txCode == "" {
		txCode = strings.TrimSpace(code.ProprietaryCode)
	}
	if txCode != "" {
		secondary = append(secondary, fmt.Sprintf("Code Tx: %s", txCode))
	}

	if iban != "" {
		secondary = append(secondary, fmt.Sprintf("IBAN: %s", iban))
	}

	return secondary
}

func assemble(main, secondary []string) string {
	description := strings.Join(main, " - ")
	if len(secondary) > 0 {
		description += fmt.Sprintf(" (%s)", strings.Join(secondary, "; "))
	}

	if strings.TrimSpace(description) == "" {
		return placeholderDescription
	}

	return description
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
