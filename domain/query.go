package domain

// TxQuery narrows an indexer transaction search. Zero values mean "don't
// filter".
type TxQuery struct {
	Address    string
	NotePrefix []byte
	TxType     string
	MinRound   uint64
	Limit      uint64
}

// AccountQuery narrows an indexer account search.
type AccountQuery struct {
	AssetId uint64
	Limit   uint64
}
