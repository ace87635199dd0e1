package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// SnowflakeSource issues time-ordered numbers without a database round trip.
// Each process needs its own node id.
type SnowflakeSource struct {
	node     *snowflake.Node
	template string
	now      func() time.Time
}

// NewSnowflakeSource creates a snowflake-backed number source
func NewSnowflakeSource(nodeID int64, template string) (*SnowflakeSource, error) {
	if template == "" {
		template = "INV-{SEQ}"
	}
	if err := ValidateFormat(template); err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeSource{node: node, template: template, now: time.Now}, nil
}

func (s *SnowflakeSource) NextNumber(_ context.Context, _ uuid.UUID) (string, error) {
	return Format(s.template, s.now().UTC(), s.node.Generate().Int64())
}
