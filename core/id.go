package core

import (
	"github.com/NexusOnePlus/spacedrive/schema"
	"github.com/google/uuid"
)

func newID() schema.TabID {
	return schema.TabID(uuid.NewString())
}
