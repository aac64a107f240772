package constants

const (
	AppName = "cxlab-aptos-wallet"

	// Move type tags the wallet core keys on. The native coin is shown as
	// the account balance and excluded from asset discovery.
	NativeCoinType     = "0x1::TestCoin::TestCoin"
	NativeCoinStoreTag = "0x1::Coin::CoinStore<0x1::TestCoin::TestCoin>"
	CoinStoreTag       = "0x1::Coin::CoinStore"
	CoinInfoTag        = "0x1::Coin::CoinInfo"

	TransferFunction = "0x1::Coin::transfer"
	RegisterFunction = "0x1::Coin::register"

	ScriptFunctionPayloadType = "script_function_payload"

	// Ed25519 single-signer authentication key scheme byte.
	Ed25519Scheme = byte(0x00)

	// Margin kept back from the balance when validating a transfer,
	// covering transaction fees.
	DefaultGasReserve = "40"

	DefaultFaucetAmount = uint64(5000)

	DefaultNodeURL    = "https://fullnode.devnet.aptoslabs.com"
	DefaultFaucetURL  = "https://faucet.devnet.aptoslabs.com"
	DefaultListenAddr = "127.0.0.1:8970"
)
