package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
)

// InitIDNode must run before the first GenerateID call to pick a node other
// than the default one.
func InitIDNode(node int64) error {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return err
	}
	idNode = n
	return nil
}

func GenerateID() int64 {
	idNodeOnce.Do(func() {
		if idNode == nil {
			idNode, _ = snowflake.NewNode(1)
		}
	})
	return idNode.Generate().Int64()
}
