package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"storeroom/internal/domain/audit"
)

// Compile-time check.
var _ audit.Recorder = (*AuditStore)(nil)

const compressionZstd = "zstd"
const compressionNone = "none"

// AuditStore persists action trail records. Payloads above the threshold
// are zstd-compressed; invoices with many lines compress well.
type AuditStore struct {
	txManager *TxManager
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder

	compressThreshold int
}

// NewAuditStore creates the trail store.
func NewAuditStore(txManager *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditStore{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record inserts one trail row.
func (s *AuditStore) Record(ctx context.Context, rec *audit.Record) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	var compressed []byte
	algo := compressionNone
	if len(payload) > s.compressThreshold {
		compressed = s.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = compressionZstd
	}

	const sql = `
		INSERT INTO audit_trail (
			id, action, entity, entity_id, admin_id,
			payload, payload_compressed, compression_algo, at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.txManager.GetQuerier(ctx).Exec(ctx, sql,
		rec.ID, rec.Action, rec.Entity, rec.EntityID, rec.AdminID,
		payload, compressed, algo, rec.At,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// History returns the trail for one entity, newest first, decompressing
// payloads as needed.
func (s *AuditStore) History(ctx context.Context, entity string, entityID any, limit int) ([]audit.Record, error) {
	const sql = `
		SELECT id, action, entity, entity_id, admin_id,
			   payload, payload_compressed, compression_algo, at
		FROM audit_trail
		WHERE entity = $1 AND entity_id = $2
		ORDER BY at DESC
		LIMIT $3
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		var (
			rec        audit.Record
			payload    []byte
			compressed []byte
			algo       string
		)
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Entity, &rec.EntityID, &rec.AdminID,
			&payload, &compressed, &algo, &rec.At); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if algo == compressionZstd && len(compressed) > 0 {
			payload, err = s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit payload: %w", err)
			}
		}
		rec.Payload = json.RawMessage(payload)
		records = append(records, rec)
	}
	return records, rows.Err()
}
