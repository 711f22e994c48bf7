package config

// Bookfile represents the structure of a book YAML file.
type Bookfile struct {
	Version        string                   `yaml:"version"`
	Name           string                   `yaml:"name"`
	EvaluationDate string                   `yaml:"evaluationDate"`
	Quotes         map[string]float64       `yaml:"quotes"`
	Derived        map[string]DerivedDTO    `yaml:"derived"`
	Links          map[string]LinkDTO       `yaml:"links"`
	Engines        map[string]EngineDTO     `yaml:"engines"`
	Instruments    map[string]InstrumentDTO `yaml:"instruments"`
}

// DerivedDTO represents a derived quote definition.
type DerivedDTO struct {
	Op      string   `yaml:"op"`
	Sources []string `yaml:"sources"`
	Factor  *float64 `yaml:"factor"`
	Offset  float64  `yaml:"offset"`
}

// LinkDTO represents a relinkable quote definition.
type LinkDTO struct {
	Target  string `yaml:"target"`
	Observe *bool  `yaml:"observe"`
}

// EngineDTO represents a pricing engine definition.
type EngineDTO struct {
	Kind  string `yaml:"kind"`
	Price string `yaml:"price"`
	Bid   string `yaml:"bid"`
	Ask   string `yaml:"ask"`
}

// InstrumentDTO represents an instrument definition.
type InstrumentDTO struct {
	Engine   string   `yaml:"engine"`
	Quantity *float64 `yaml:"quantity"`
	Maturity string   `yaml:"maturity"`
}
