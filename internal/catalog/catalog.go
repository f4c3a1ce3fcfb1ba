package catalog

// Catalog is the full immutable configuration the scoring engine runs
// against: segments, questions, benchmark rows, recommendation and projection
// tables, and the resiliency force model. It is loaded once at startup and
// never mutated.
type Catalog struct {
	Version string `yaml:"version" json:"version"`

	// SegmentKey is the answer key holding the routing answer. Aliases cover
	// older clients that submit the segment under a different key.
	SegmentKey        string   `yaml:"segment_key" json:"segment_key"`
	SegmentKeyAliases []string `yaml:"segment_key_aliases,omitempty" json:"segment_key_aliases,omitempty"`
	DefaultSegment    string   `yaml:"default_segment" json:"default_segment"`

	CategoryNames []string `yaml:"category_names" json:"category_names"`

	Segments        []Segment        `yaml:"segments" json:"segments"`
	Questions       []Question       `yaml:"questions" json:"questions"`
	Benchmarks      []Benchmark      `yaml:"benchmarks" json:"benchmarks"`
	Recommendations []Recommendation `yaml:"recommendations" json:"recommendations"`
	Projection      ProjectionConfig `yaml:"projection" json:"projection"`
	Forces          []Force          `yaml:"forces" json:"forces"`

	Stats        Stats        `yaml:"stats" json:"stats"`
	BadDebtRates BadDebtRates `yaml:"bad_debt_rates" json:"bad_debt_rates"`
	StaffCosts   StaffCosts   `yaml:"staff_costs" json:"staff_costs"`

	segmentsByID  map[string]*Segment
	questionsByID map[string]*Question
	benchmarksBy  map[string]*Benchmark
}

func (c *Catalog) index() {
	c.segmentsByID = make(map[string]*Segment, len(c.Segments))
	for i := range c.Segments {
		c.segmentsByID[c.Segments[i].ID] = &c.Segments[i]
	}
	c.questionsByID = make(map[string]*Question, len(c.Questions))
	for i := range c.Questions {
		c.questionsByID[c.Questions[i].ID] = &c.Questions[i]
	}
	c.benchmarksBy = make(map[string]*Benchmark, len(c.Benchmarks))
	for i := range c.Benchmarks {
		c.benchmarksBy[c.Benchmarks[i].Segment] = &c.Benchmarks[i]
	}
}

// CategoryCount returns the number of scoring categories.
func (c *Catalog) CategoryCount() int {
	return len(c.CategoryNames)
}

// Question returns the question with the given id, or nil.
func (c *Catalog) Question(id string) *Question {
	return c.questionsByID[id]
}

// SegmentByID returns the segment with the given id, or nil.
func (c *Catalog) SegmentByID(id string) *Segment {
	return c.segmentsByID[id]
}

// SegmentOrDefault resolves a segment code, falling back to the default
// segment for unknown or empty codes so that scoring is always computable.
func (c *Catalog) SegmentOrDefault(id string) *Segment {
	if s, ok := c.segmentsByID[id]; ok {
		return s
	}
	return c.segmentsByID[c.DefaultSegment]
}

// BenchmarkFor returns the benchmark row for a segment, falling back to the
// default segment's row when unmapped.
func (c *Catalog) BenchmarkFor(segment string) *Benchmark {
	if b, ok := c.benchmarksBy[segment]; ok {
		return b
	}
	return c.benchmarksBy[c.DefaultSegment]
}

// CategoryName returns the display name for a category index.
func (c *Catalog) CategoryName(i int) string {
	if i < 0 || i >= len(c.CategoryNames) {
		return "Unknown"
	}
	return c.CategoryNames[i]
}
