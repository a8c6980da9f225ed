package domain

import "time"

// EntryType indicates whether a ledger entry is a Debit or a Credit leg.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// EntryKind classifies the economic role of a ledger entry.
type EntryKind string

const (
	KindAddedFunds                EntryKind = "ADDED_FUNDS"
	KindBalanceTransfer           EntryKind = "BALANCE_TRANSFER"
	KindContribution              EntryKind = "CONTRIBUTION"
	KindExpense                   EntryKind = "EXPENSE"
	KindHostFee                   EntryKind = "HOST_FEE"
	KindHostFeeShare              EntryKind = "HOST_FEE_SHARE"
	KindHostFeeShareDebt          EntryKind = "HOST_FEE_SHARE_DEBT"
	KindPaymentProcessorCover     EntryKind = "PAYMENT_PROCESSOR_COVER"
	KindPaymentProcessorDispute   EntryKind = "PAYMENT_PROCESSOR_DISPUTE_FEE"
	KindPaymentProcessorFee       EntryKind = "PAYMENT_PROCESSOR_FEE"
	KindPlatformTip               EntryKind = "PLATFORM_TIP"
	KindPlatformTipDebt           EntryKind = "PLATFORM_TIP_DEBT"
	KindPrepaidPaymentMethod      EntryKind = "PREPAID_PAYMENT_METHOD"
	KindTax                       EntryKind = "TAX"
)

// EntryKinds lists every known kind, in enum order.
var EntryKinds = []EntryKind{
	KindAddedFunds,
	KindBalanceTransfer,
	KindContribution,
	KindExpense,
	KindHostFee,
	KindHostFeeShare,
	KindHostFeeShareDebt,
	KindPaymentProcessorCover,
	KindPaymentProcessorDispute,
	KindPaymentProcessorFee,
	KindPlatformTip,
	KindPlatformTipDebt,
	KindPrepaidPaymentMethod,
	KindTax,
}

// PaymentMethodType identifies how money moved for an entry.
// A nil *PaymentMethodType on an entry means no payment method was involved
// (e.g. manually added funds).
type PaymentMethodType string

const (
	PaymentMethodCreditCard    PaymentMethodType = "CREDIT_CARD"
	PaymentMethodGiftCard      PaymentMethodType = "GIFT_CARD"
	PaymentMethodPrepaid       PaymentMethodType = "PREPAID"
	PaymentMethodBankTransfer  PaymentMethodType = "BANK_TRANSFER"
	PaymentMethodPaypal        PaymentMethodType = "PAYPAL"
	PaymentMethodUSBankAccount PaymentMethodType = "US_BANK_ACCOUNT"
	PaymentMethodSEPADebit     PaymentMethodType = "SEPA_DEBIT"
	PaymentMethodAlipay        PaymentMethodType = "ALIPAY"
	PaymentMethodCollective    PaymentMethodType = "COLLECTIVE"
	PaymentMethodCrypto        PaymentMethodType = "CRYPTO"
)

// LedgerEntry is one immutable accounting row: a single debit or credit leg of
// an economic event. Entries sharing a GroupID were created by one real-world
// event (e.g. a contribution plus its processor fee and platform tip).
// Entries are written by the payment-processing subsystem; this service only reads them.
type LedgerEntry struct {
	ID                      int64              `json:"id"`
	GroupID                 string             `json:"groupID"`
	Type                    EntryType          `json:"type"`
	Kind                    EntryKind          `json:"kind"`
	OwnerAccountID          int64              `json:"ownerAccountID"`
	CounterpartyAccountID   int64              `json:"counterpartyAccountID"`
	HostAccountID           *int64             `json:"hostAccountID,omitempty"`
	Amount                  int64              `json:"amount"` // signed, minor currency units
	Currency                string             `json:"currency"`
	IsDebt                  bool               `json:"isDebt"`
	PaymentMethodID         *int64             `json:"paymentMethodID,omitempty"`
	PaymentMethodType       *PaymentMethodType `json:"paymentMethodType,omitempty"`
	LinkedExpenseID         *int64             `json:"linkedExpenseID,omitempty"`
	LinkedOrderID           *int64             `json:"linkedOrderID,omitempty"`
	GiftCardIssuerAccountID *int64             `json:"giftCardIssuerAccountID,omitempty"`
	Description             string             `json:"description"`
	CreatedAt               time.Time          `json:"createdAt"`
}
