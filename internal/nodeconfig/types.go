package nodeconfig

// NodeRunConfig is the run configuration the external Nitro node consumes
// through a file mount; it is never passed as inline flags.
type NodeRunConfig struct {
	Chain       ChainConfig       `json:"chain"`
	ParentChain ParentChainConfig `json:"parent-chain"`
	HTTP        HTTPConfig        `json:"http"`
	Node        NodeSettings      `json:"node"`
}

type ChainConfig struct {
	InfoFiles []string `json:"info-files,omitempty"`
	Name      string   `json:"name"`
	ID        uint64   `json:"id"`
}

type ParentChainConfig struct {
	ID         uint64           `json:"id"`
	Connection ConnectionConfig `json:"connection"`
}

type ConnectionConfig struct {
	URL string `json:"url"`
}

type HTTPConfig struct {
	Addr       string   `json:"addr"`
	Port       int      `json:"port"`
	VHosts     string   `json:"vhosts"`
	CORSDomain string   `json:"corsdomain"`
	API        []string `json:"api"`
}

type NodeSettings struct {
	Sequencer        ToggleConfig      `json:"sequencer"`
	DelayedSequencer ToggleConfig      `json:"delayed-sequencer"`
	BatchPoster      BatchPosterConfig `json:"batch-poster"`
	Staker           StakerConfig      `json:"staker"`

	// DataAvailability and BlobReader are the built-in availability
	// mechanisms; both are forced off when an external DA provider is
	// active, the two are mutually exclusive for a chain.
	DataAvailability *ToggleConfig `json:"data-availability,omitempty"`
	BlobReader       *ToggleConfig `json:"blob-reader,omitempty"`

	DA *DAConfig `json:"da,omitempty"`
}

type ToggleConfig struct {
	Enable bool `json:"enable"`
}

type BatchPosterConfig struct {
	Enable  bool `json:"enable"`
	MaxSize int  `json:"max-size,omitempty"`
}

type StakerConfig struct {
	Enable   bool   `json:"enable"`
	Strategy string `json:"strategy,omitempty"`
}

type DAConfig struct {
	ExternalProvider ExternalProviderConfig `json:"external-provider"`
}

type ExternalProviderConfig struct {
	Enable     bool              `json:"enable"`
	WithWriter bool              `json:"with-writer"`
	RPC        ProviderRPCConfig `json:"rpc"`
}

type ProviderRPCConfig struct {
	URL                       string `json:"url"`
	Retries                   int    `json:"retries"`
	RetryErrors               string `json:"retry-errors"`
	ArgLogLimit               int    `json:"arg-log-limit"`
	WebsocketMessageSizeLimit int64  `json:"websocket-message-size-limit"`
}
