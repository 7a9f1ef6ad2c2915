package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Ranking *rankingBlock `hcl:"ranking,block"`
	Input   *inputBlock   `hcl:"input,block"`
	Output  *outputBlock  `hcl:"output,block"`
	Publish *publishBlock `hcl:"publish,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

type rankingBlock struct {
	Precision     *float64 `hcl:"precision,optional"`
	Damping       *float64 `hcl:"damping,optional"`
	MaxIterations *int     `hcl:"max_iterations,optional"`
}

type inputBlock struct {
	Path *string `hcl:"path,optional"`
}

type outputBlock struct {
	Format *string `hcl:"format,optional"`
	Top    *int    `hcl:"top,optional"`
}

type publishBlock struct {
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	AckEvent           *string `hcl:"ack_event,optional"`
	Timeout            *string `hcl:"timeout,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}
