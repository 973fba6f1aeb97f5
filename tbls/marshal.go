package tbls

import "github.com/fxamacker/cbor/v2"

type shareMarshal struct {
	ID     ParticipantID `cbor:"1,keyasint"`
	Secret []byte        `cbor:"2,keyasint,omitempty"`
	Public []byte        `cbor:"3,keyasint"`
}

// MarshalBinary encodes s as CBOR for handing it to its participant.
func (s *Share) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&shareMarshal{
		ID:     s.ID,
		Secret: s.Secret,
		Public: s.Public,
	})
}

// UnmarshalBinary decodes a share produced by [Share.MarshalBinary].
// Only the structure is checked; use [Scheme.CheckShare] to validate the
// key material against its generator.
func (s *Share) UnmarshalBinary(data []byte) error {
	var sm shareMarshal
	if err := cbor.Unmarshal(data, &sm); err != nil {
		return invalidf("decode share: %v", err)
	}
	if sm.ID == 0 || len(sm.Secret) == 0 || len(sm.Public) == 0 {
		return invalidf("decode share: missing fields")
	}
	s.ID = sm.ID
	s.Secret = sm.Secret
	s.Public = sm.Public
	return nil
}

// MarshalBinary encodes p as CBOR.
func (p *PublicShare) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&shareMarshal{
		ID:     p.ID,
		Public: p.Public,
	})
}

// UnmarshalBinary decodes a public share produced by
// [PublicShare.MarshalBinary].
func (p *PublicShare) UnmarshalBinary(data []byte) error {
	var sm shareMarshal
	if err := cbor.Unmarshal(data, &sm); err != nil {
		return invalidf("decode public share: %v", err)
	}
	if sm.ID == 0 || len(sm.Public) == 0 {
		return invalidf("decode public share: missing fields")
	}
	if len(sm.Secret) != 0 {
		return invalidf("decode public share: unexpected secret")
	}
	p.ID = sm.ID
	p.Public = sm.Public
	return nil
}
