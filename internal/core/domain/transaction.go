package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies what kind of ledger entry a transaction is.
type TransactionType string

const (
	TxnRoomCharge  TransactionType = "room_charge"
	TxnAddonCharge TransactionType = "addon_charge"
	TxnFee         TransactionType = "fee"
	TxnTax         TransactionType = "tax"
	TxnDiscount    TransactionType = "discount"
	TxnAdjustment  TransactionType = "adjustment"
	TxnPayment     TransactionType = "payment"
	TxnDeposit     TransactionType = "deposit"
	TxnRefund      TransactionType = "refund"
)

// TransactionTypes lists every valid transaction type, used for enum validation.
var TransactionTypes = []TransactionType{
	TxnRoomCharge, TxnAddonCharge, TxnFee, TxnTax, TxnDiscount,
	TxnAdjustment, TxnPayment, TxnDeposit, TxnRefund,
}

// Bucket is the reporting group a transaction type belongs to.
type Bucket string

const (
	BucketCharge   Bucket = "charge"
	BucketPayment  Bucket = "payment"
	BucketTax      Bucket = "tax"
	BucketDiscount Bucket = "discount"
	BucketRefund   Bucket = "refund"
	BucketOther    Bucket = "other"
)

// Classify maps a transaction type to its reporting bucket. Unknown types land
// in BucketOther so that aggregation over malformed records never fails.
func Classify(t TransactionType) Bucket {
	switch t {
	case TxnRoomCharge, TxnAddonCharge, TxnFee:
		return BucketCharge
	case TxnPayment, TxnDeposit:
		return BucketPayment
	case TxnTax:
		return BucketTax
	case TxnDiscount:
		return BucketDiscount
	case TxnRefund:
		return BucketRefund
	default:
		return BucketOther
	}
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TxnPosted  TransactionStatus = "posted"
	TxnPending TransactionStatus = "pending"
	TxnVoided  TransactionStatus = "voided"
)

// Category classifies a transaction for revenue reporting. Free-form in the
// data model but validated against this closed set on posting.
type Category string

const (
	CategoryRoom       Category = "room"
	CategoryFood       Category = "food"
	CategorySpa        Category = "spa"
	CategoryMinibar    Category = "minibar"
	CategoryLaundry    Category = "laundry"
	CategoryBar        Category = "bar"
	CategoryConference Category = "conference"
	CategoryOther      Category = "other"
	CategoryPayment    Category = "payment"
	CategoryDiscount   Category = "discount"
	CategoryAdjustment Category = "adjustment"
)

// Categories lists every valid category, used for enum validation.
var Categories = []Category{
	CategoryRoom, CategoryFood, CategorySpa, CategoryMinibar, CategoryLaundry,
	CategoryBar, CategoryConference, CategoryOther, CategoryPayment,
	CategoryDiscount, CategoryAdjustment,
}

// PaymentMethod identifies how a payment/deposit/refund was tendered.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodOnline       PaymentMethod = "online"
	MethodOther        PaymentMethod = "other"
)

// PaymentMethods lists every valid payment method.
var PaymentMethods = []PaymentMethod{
	MethodCash, MethodCard, MethodUPI, MethodBankTransfer,
	MethodCheque, MethodOnline, MethodOther,
}

// CardDetails are required when the method is card.
type CardDetails struct {
	LastFour string `json:"lastFour"`
	CardType string `json:"cardType"` // visa, mastercard, amex, rupay...
}

// UPIDetails are required when the method is upi.
type UPIDetails struct {
	UPIID string `json:"upiID"`
}

// BankTransferDetails are required when the method is bank_transfer.
type BankTransferDetails struct {
	BankName  string `json:"bankName"`
	Reference string `json:"reference,omitempty"`
}

// ChequeDetails are required when the method is cheque.
type ChequeDetails struct {
	ChequeNumber string    `json:"chequeNumber"`
	ChequeDate   time.Time `json:"chequeDate"`
	BankName     string    `json:"bankName"`
}

// GatewayDetails record the payment gateway references for online payments.
type GatewayDetails struct {
	Provider  string `json:"provider"` // e.g. razorpay
	OrderID   string `json:"orderID"`
	PaymentID string `json:"paymentID,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// PaymentDetails is a tagged variant keyed by Method. Only the group matching
// the method is populated, which keeps per-method validation local.
type PaymentDetails struct {
	Method       PaymentMethod        `json:"method"`
	Card         *CardDetails         `json:"card,omitempty"`
	UPI          *UPIDetails          `json:"upi,omitempty"`
	BankTransfer *BankTransferDetails `json:"bankTransfer,omitempty"`
	Cheque       *ChequeDetails       `json:"cheque,omitempty"`
	Gateway      *GatewayDetails      `json:"gateway,omitempty"`
}

// Transaction is a single signed monetary entry belonging to exactly one folio.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionNumber string            `json:"transactionNumber"`
	FolioID           string            `json:"folioID"`
	ReservationID     string            `json:"reservationID"`
	Type              TransactionType   `json:"type"`
	Category          Category          `json:"category"`
	Description       string            `json:"description"`
	Quantity          decimal.Decimal   `json:"quantity"`
	Rate              decimal.Decimal   `json:"rate"`
	Amount            decimal.Decimal   `json:"amount"` // signed, derived from type/quantity/rate
	PostDate          time.Time         `json:"postDate"`
	Status            TransactionStatus `json:"status"`
	Tags              []string          `json:"tags,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	ReferenceNumber   string            `json:"referenceNumber,omitempty"`
	Payment           *PaymentDetails   `json:"payment,omitempty"` // set for payment/deposit/refund entries
	VoidReason        string            `json:"voidReason,omitempty"`
	VoidedAt          *time.Time        `json:"voidedAt,omitempty"`
	TransferredFromID *string           `json:"transferredFromID,omitempty"` // folio the entry was moved out of
	AuditFields
}

// IsVoided reports whether the transaction is excluded from balance math.
func (t *Transaction) IsVoided() bool {
	return t.Status == TxnVoided
}

// Bucket returns the reporting bucket for this transaction.
func (t *Transaction) Bucket() Bucket {
	return Classify(t.Type)
}
