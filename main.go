package main

import (
	"github.com/TakuGaiax/Employee-NFT/config"
	"github.com/TakuGaiax/Employee-NFT/contract"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Error loading chaincode configuration: " + err.Error())
	}
	flogging.ActivateSpec(cfg.LogSpec)

	cc, err := contractapi.NewChaincode(contract.NewEmployeeIDContract(), contract.NewBusinessCardContract())
	if err != nil {
		panic("Error creating employee NFT chaincode: " + err.Error())
	}
	cc.Info.Title = "employee-nft"
	cc.Info.Version = "1.0.0"

	if !cfg.External() {
		if err := cc.Start(); err != nil {
			panic("Error starting chaincode: " + err.Error())
		}
		return
	}

	server := &shim.ChaincodeServer{
		CCID:     cfg.ChaincodeID,
		Address:  cfg.ServerAddress,
		CC:       cc,
		TLSProps: shim.TLSProperties{Disabled: true},
	}
	if err := server.Start(); err != nil {
		panic("Error starting chaincode server: " + err.Error())
	}
}
