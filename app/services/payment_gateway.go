package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	OrderNumber string
	GrossAmount decimal.Decimal
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	FinishURL   string
}

type PaymentSession struct {
	Token       string
	RedirectURL string
}

type GatewayStatus struct {
	TransactionID     string
	TransactionStatus string
	FraudStatus       string
	StatusCode        string
}

// PaymentGateway is the hosted payment provider the storefront redirects to.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req PaymentRequest) (*PaymentSession, error)
	TransactionStatus(ctx context.Context, orderNumber string) (*GatewayStatus, error)
}

type MidtransGateway struct {
	snapClient snap.Client
	coreClient coreapi.Client
}

func NewMidtransGateway(snapClient snap.Client, coreClient coreapi.Client) *MidtransGateway {
	return &MidtransGateway{snapClient: snapClient, coreClient: coreClient}
}

// midtransErr converts the SDK's typed error so a nil pointer never turns
// into a non-nil error interface.
func midtransErr(err *midtrans.Error) error {
	if err == nil {
		return nil
	}
	if err.RawError != nil {
		return fmt.Errorf("midtrans: %s: %w", err.Message, err.RawError)
	}
	return fmt.Errorf("midtrans: %s (status %d)", err.Message, err.StatusCode)
}

func (g *MidtransGateway) CreateTransaction(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderNumber,
			GrossAmt: req.GrossAmount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if req.FinishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: req.FinishURL}
	}

	resp, err := g.snapClient.CreateTransaction(snapReq)
	if e := midtransErr(err); e != nil {
		return nil, e
	}
	if resp == nil || resp.Token == "" || resp.RedirectURL == "" {
		return nil, errors.New("midtrans returned an incomplete snap response")
	}
	return &PaymentSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (g *MidtransGateway) TransactionStatus(ctx context.Context, orderNumber string) (*GatewayStatus, error) {
	resp, err := g.coreClient.CheckTransaction(orderNumber)
	if e := midtransErr(err); e != nil {
		return nil, e
	}
	if resp == nil {
		return nil, errors.New("midtrans returned an empty transaction status")
	}
	return &GatewayStatus{
		TransactionID:     resp.TransactionID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		StatusCode:        resp.StatusCode,
	}, nil
}
