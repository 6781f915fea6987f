package ingest

import "github.com/google/uuid"

// DeriveID returns the document ID for a source-specific unique characteristic.
//
// The ID is a UUIDv5 in the DNS namespace over the raw label, the same derivation the
// ingestion service uses for generate_id_from_label, so IDs computed here match IDs the
// service would assign itself.
func DeriveID(uniqueCharacteristic string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(uniqueCharacteristic)).String()
}
