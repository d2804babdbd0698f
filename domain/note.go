package domain

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Note wire format: [2 byte big-endian version][32 byte sha512/256 digest of
// the payload][msgpack payload]. The digest lets anyone verify the payload
// was not altered after the transaction was signed.
const (
	noteVersion     uint16 = 1
	noteVersionLen         = 2
	noteDigestLen          = sha512.Size256
	noteHeaderLen          = noteVersionLen + noteDigestLen
)

// DaoNoteRecord is the off-chain descriptive data linked to a dao setup
// transaction. Escrow addresses are not stored, they are re-derived from the
// asset ids and creator when the record is read back.
type DaoNoteRecord struct {
	AppId          uint64
	Name           string
	DescrId        string
	SharesAssetId  uint64
	FundsAssetId   uint64
	Creator        types.Address
	ImageHash      []byte
	SocialMediaUrl string
}

type daoNotePayload struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	AppId          uint64 `codec:"a"`
	Name           string `codec:"n"`
	DescrId        string `codec:"d"`
	SharesAssetId  uint64 `codec:"s"`
	FundsAssetId   uint64 `codec:"f"`
	Creator        []byte `codec:"c"`
	ImageHash      []byte `codec:"i"`
	SocialMediaUrl string `codec:"m"`
}

func EncodeDaoNote(record DaoNoteRecord) ([]byte, error) {
	payload := msgpack.Encode(&daoNotePayload{
		AppId:          record.AppId,
		Name:           record.Name,
		DescrId:        record.DescrId,
		SharesAssetId:  record.SharesAssetId,
		FundsAssetId:   record.FundsAssetId,
		Creator:        record.Creator[:],
		ImageHash:      record.ImageHash,
		SocialMediaUrl: record.SocialMediaUrl,
	})

	digest := sha512.Sum512_256(payload)

	note := make([]byte, 0, noteHeaderLen+len(payload))
	note = binary.BigEndian.AppendUint16(note, noteVersion)
	note = append(note, digest[:]...)
	note = append(note, payload...)
	return note, nil
}

// DecodeDaoNote parses and verifies a dao note. An unknown version or a
// digest that doesn't match the payload is a hard error, it means tampering
// or a serialization bug and is never recovered locally.
func DecodeDaoNote(note []byte) (*DaoNoteRecord, error) {
	if len(note) < noteHeaderLen {
		return nil, fmt.Errorf("%w: %v bytes", ErrorNoteTooShort, len(note))
	}

	version := binary.BigEndian.Uint16(note[:noteVersionLen])
	if version != noteVersion {
		return nil, fmt.Errorf("%w: %v", ErrorUnknownNoteVersion, version)
	}

	embedded := note[noteVersionLen:noteHeaderLen]
	payload := note[noteHeaderLen:]

	digest := sha512.Sum512_256(payload)
	if !bytes.Equal(digest[:], embedded) {
		return nil, fmt.Errorf("%w: embedded %x, computed %x", ErrorNoteHashMismatch, embedded, digest)
	}

	var p daoNotePayload
	if err := msgpack.Decode(payload, &p); err != nil {
		return nil, fmt.Errorf("decoding note payload: %w", err)
	}

	var creator types.Address
	if len(p.Creator) != len(creator) {
		return nil, fmt.Errorf("note creator is not a 32 byte address: %v bytes", len(p.Creator))
	}
	copy(creator[:], p.Creator)

	return &DaoNoteRecord{
		AppId:          p.AppId,
		Name:           p.Name,
		DescrId:        p.DescrId,
		SharesAssetId:  p.SharesAssetId,
		FundsAssetId:   p.FundsAssetId,
		Creator:        creator,
		ImageHash:      p.ImageHash,
		SocialMediaUrl: p.SocialMediaUrl,
	}, nil
}

// NotePrefix is the version prefix of all notes this package writes, usable
// as an indexer note-prefix filter.
func NotePrefix() []byte {
	return binary.BigEndian.AppendUint16(nil, noteVersion)
}
