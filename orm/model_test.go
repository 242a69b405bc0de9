package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// counter is a minimal model used to test buckets.
type counter struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Count    int64             `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
	Owner    []byte            `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func newCounter(count int64, owner string) *counter {
	c := &counter{
		Metadata: &custody.Metadata{Schema: 1},
		Count:    count,
	}
	if owner != "" {
		c.Owner = []byte(owner)
	}
	return c
}

func ownerIndexer(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}
