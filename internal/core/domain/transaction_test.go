package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		txnType TransactionType
		want    Bucket
	}{
		{TxnRoomCharge, BucketCharge},
		{TxnAddonCharge, BucketCharge},
		{TxnFee, BucketCharge},
		{TxnPayment, BucketPayment},
		{TxnDeposit, BucketPayment},
		{TxnTax, BucketTax},
		{TxnDiscount, BucketDiscount},
		{TxnRefund, BucketRefund},
		{TxnAdjustment, BucketOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.txnType), "classifying %s", tc.txnType)
	}
}

func TestClassify_UnknownTypeLandsInOther(t *testing.T) {
	assert.Equal(t, BucketOther, Classify(TransactionType("mystery")))
}

func TestTransactionIsVoided(t *testing.T) {
	txn := Transaction{Status: TxnPosted}
	assert.False(t, txn.IsVoided())

	txn.Status = TxnVoided
	assert.True(t, txn.IsVoided())
}
