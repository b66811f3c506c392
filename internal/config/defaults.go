package config

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// DefaultNaming is the production naming of the issued tokens.
var DefaultNaming = config.NamingConfig{
	CvxName:                 "Liquis",
	CvxSymbol:               "LIQ",
	VlCvxName:               "Vote Locked Liquis",
	VlCvxSymbol:             "vlLIQ",
	CvxCrvName:              "Liquis LIT",
	CvxCrvSymbol:            "liqLIT",
	TokenFactoryNamePostfix: " Liquis Deposit",
}

// MainnetExternalAddresses are the Bunni/Timeless contracts on Ethereum mainnet.
// Forks (hardhat, tenderly) reuse them.
var MainnetExternalAddresses = config.ExternalConfig{
	Token:           common.HexToAddress("0x627fee87d0D9D2c55098A06ac805Db8F98B158Aa"), // oLIT
	Lit:             common.HexToAddress("0xfd0205066521550D7d7AB19DA8F72bb004b4C341"),
	TokenBpt:        common.HexToAddress("0x9232a548DD9E81BaC65500b5e0d918F8Ba93675C"), // BAL 20-80 WETH/LIT
	Minter:          common.HexToAddress("0xF087521Ffca0Fa8A43F5C445773aB37C5f574DA0"),
	VotingEscrow:    common.HexToAddress("0xf17d23136B4FeAd139f54fB766c8795faae09660"),
	FeeDistribution: common.HexToAddress("0x951f99350d816c0E160A2C71DEfE828BdfC17f12"),
	GaugeController: common.HexToAddress("0x901c8aA6A61f74aC95E7f397E22A0Ac7c1242218"),
	BalancerVault:   common.HexToAddress("0xBA12222222228d8Ba445958a75a0704d566BF2C8"),
	BalancerPoolID:  common.HexToHash("0x9232a548dd9e81bac65500b5e0d918f8ba93675c000200000000000000000423"),
	Weth:            common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
}

// DefaultMultisigs point every role at the first hardhat account until
// the production safes are configured.
var DefaultMultisigs = config.MultisigConfig{
	VestingMultisig:  common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
	TreasuryMultisig: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
	DaoMultisig:      common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
}
