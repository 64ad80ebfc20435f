package mutators

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator hands out identifiers that never repeat within a process.
type IDGenerator interface {
	NextID() string
}

type snowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs returns a time-ordered generator for the given node (0-1023).
func NewSnowflakeIDs(nodeID int64) (IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create id node %d: %w", nodeID, err)
	}
	return &snowflakeIDs{node: node}, nil
}

func (s *snowflakeIDs) NextID() string {
	return s.node.Generate().String()
}
