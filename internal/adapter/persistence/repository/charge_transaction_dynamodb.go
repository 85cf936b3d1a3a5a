package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ChargeTransactionDynamo commits a confirmed charge with a single
// TransactWriteItems call: the invoice flips to PAID only while it is still
// PENDING, and the payment row flips to charge_success=true in the same
// transaction. DynamoDB guarantees both writes land together or not at all,
// which is the serializable guard the charge workflow relies on.

type ChargeTransactionDynamo struct {
	ddb           *dynamodb.Client
	invoicesTable string
	paymentsTable string
}

var _ interfaces.IChargeTransaction = (*ChargeTransactionDynamo)(nil)

func NewChargeTransactionDynamo(ddb *dynamodb.Client) *ChargeTransactionDynamo {
	return &ChargeTransactionDynamo{
		ddb:           ddb,
		invoicesTable: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		paymentsTable: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (t *ChargeTransactionDynamo) CommitSuccessfulCharge(ctx context.Context, invoiceID, paymentID string, chargedAt time.Time) error {
	_, err := t.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(t.invoicesTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: invoiceID},
					},
					UpdateExpression:    aws.String("SET #status = :paid"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":paid":    &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)},
						":pending": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPending)},
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(t.paymentsTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: paymentID},
					},
					UpdateExpression:    aws.String("SET charge_success = :success, charge_date = :date"),
					ConditionExpression: aws.String("attribute_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":success": &types.AttributeValueMemberBOOL{Value: true},
						":date":    &types.AttributeValueMemberS{Value: chargedAt.UTC().Format(time.RFC3339Nano)},
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return interfaces.ErrInvoiceStateConflict
				}
			}
		}
		return err
	}
	return nil
}
