package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"rentora/internal/core/id"
	"rentora/internal/domain/audit"
)

// Compile-time check that AuditService implements audit.Recorder interface.
var _ audit.Recorder = (*AuditService)(nil)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the snapshot size above which changes are stored compressed.
const DefaultCompressThreshold = 10 * 1024

// AuditRow is a stored sys_audit row with its snapshot decompressed.
type AuditRow struct {
	ID         id.ID
	EntityType string
	EntityID   id.ID
	Action     audit.Action
	UserID     string
	Changes    []byte
	CreatedAt  time.Time
}

// AuditService writes entity snapshots to sys_audit.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: DefaultCompressThreshold,
	}, nil
}

// encode returns the JSONB and BYTEA column values for a snapshot.
func (s *AuditService) encode(snapshot []byte) (changes, compressed []byte, algo CompressionAlgo) {
	if len(snapshot) > s.compressThreshold {
		return nil, s.encoder.EncodeAll(snapshot, nil), CompressionZstd
	}
	return snapshot, nil, CompressionNone
}

func (s *AuditService) decode(changes, compressed []byte, algo CompressionAlgo) ([]byte, error) {
	if algo == CompressionZstd && len(compressed) > 0 {
		out, err := s.decoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress changes: %w", err)
		}
		return out, nil
	}
	return changes, nil
}

// Record implements audit.Recorder.
func (s *AuditService) Record(ctx context.Context, entry audit.Entry) error {
	changes, compressed, algo := s.encode(entry.Snapshot)

	const sql = `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, user_id,
			changes, changes_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql,
		id.New(), entry.EntityType, entry.EntityID, string(entry.Action), entry.UserID,
		changes, compressed, string(algo), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// History returns the newest audit rows of an entity.
func (s *AuditService) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]AuditRow, error) {
	const sql = `
		SELECT id, entity_type, entity_id, action, user_id,
			   changes, changes_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditRow
	for rows.Next() {
		var (
			e          AuditRow
			action     string
			algo       string
			changes    []byte
			compressed []byte
		)
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &action, &e.UserID,
			&changes, &compressed, &algo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Action = audit.Action(action)
		if e.Changes, err = s.decode(changes, compressed, CompressionAlgo(algo)); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
