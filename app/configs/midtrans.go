package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

func MidtransEnvironment(env ENV) midtrans.EnvironmentType {
	if env.MidtransEnv == "production" {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

func NewMidtransClients(env ENV) (snap.Client, coreapi.Client) {
	var snapClient snap.Client
	var coreClient coreapi.Client

	snapClient.New(env.MidtransServerKey, MidtransEnvironment(env))
	coreClient.New(env.MidtransServerKey, MidtransEnvironment(env))
	return snapClient, coreClient
}
