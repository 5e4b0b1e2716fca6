package bol_number

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const prefix = "BOL-"

type Factory struct {
	node *snowflake.Node
}

func New(nodeID int64) (*Factory, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("bol number node %d: %w", nodeID, err)
	}
	return &Factory{node: node}, nil
}

func (f *Factory) Next() string {
	return prefix + f.node.Generate().String()
}
