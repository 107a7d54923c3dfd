package models

// Client holds what is needed to reach a node and sign for one account
type Client struct {
	Addr            string
	Seed            string
	SS58Prefix      uint8
	MortalityPeriod uint64
}
