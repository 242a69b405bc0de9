package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
)

// Vault holds funds of a single asset until the release time. The balance
// is not stored. It is held by the vault Address in the ledger.
type Vault struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Asset is the ticker of the held currency.
	Asset       string           `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Beneficiary custody.Address  `protobuf:"bytes,3,opt,name=beneficiary,proto3,casttype=github.com/iov-one/custody.Address" json:"beneficiary,omitempty"`
	ReleaseTime custody.UnixTime `protobuf:"varint,4,opt,name=release_time,json=releaseTime,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"release_time,omitempty"`
	// Address is where the funds are held. It is derived from the vault ID.
	Address   custody.Address  `protobuf:"bytes,5,opt,name=address,proto3,casttype=github.com/iov-one/custody.Address" json:"address,omitempty"`
	Depositor custody.Address  `protobuf:"bytes,6,opt,name=depositor,proto3,casttype=github.com/iov-one/custody.Address" json:"depositor,omitempty"`
	CreatedAt custody.UnixTime `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"created_at,omitempty"`
}

func (m *Vault) Reset()         { *m = Vault{} }
func (m *Vault) String() string { return proto.CompactTextString(m) }
func (*Vault) ProtoMessage()    {}

// Configuration is the timelock extension configuration, stored using gconf.
type Configuration struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner is allowed to update the configuration.
	Owner custody.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/custody.Address" json:"owner,omitempty"`
	// MaxExtension is the longest, in seconds, that a single relock can
	// postpone the release time by. Zero means no limit.
	MaxExtension int64 `protobuf:"varint,3,opt,name=max_extension,json=maxExtension,proto3" json:"max_extension,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// CreateMsg is a request to create a new vault. Funds are deposited
// separately by moving them to the vault address.
type CreateMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Asset       string            `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Beneficiary custody.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3,casttype=github.com/iov-one/custody.Address" json:"beneficiary,omitempty"`
	ReleaseTime custody.UnixTime  `protobuf:"varint,4,opt,name=release_time,json=releaseTime,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"release_time,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// RelockMsg postpones the release time of a vault. It must be signed by the
// vault beneficiary.
type RelockMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID     []byte            `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	ReleaseTime custody.UnixTime  `protobuf:"varint,3,opt,name=release_time,json=releaseTime,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"release_time,omitempty"`
}

func (m *RelockMsg) Reset()         { *m = RelockMsg{} }
func (m *RelockMsg) String() string { return proto.CompactTextString(m) }
func (*RelockMsg) ProtoMessage()    {}

// UpdateConfigurationMsg replaces the configuration. It must be signed by the
// current configuration owner.
type UpdateConfigurationMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration    `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}
