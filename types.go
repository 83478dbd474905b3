package schemalens

import (
	"time"
)

// ValidationStatus is the upstream verdict on a schema document.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusInvalid ValidationStatus = "invalid"
	ValidationStatusPending ValidationStatus = "pending"
)

// SchemaReference is one outgoing named reference of a schema.
type SchemaReference struct {
	Ref        string `json:"$ref" yaml:"$ref"`
	SchemaName string `json:"schemaName" yaml:"schemaName"`
}

// SchemaMetadata carries file level information about a schema document.
type SchemaMetadata struct {
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`
	FileSize     int64     `json:"fileSize" yaml:"fileSize"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema is an immutable snapshot of one JSON Schema document tracked by a project.
// Content is the decoded JSON body (normally map[string]any).
type Schema struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Content          any               `json:"content" yaml:"content"`
	References       []SchemaReference `json:"references" yaml:"references"`
	ReferencedBy     []string          `json:"referencedBy" yaml:"referencedBy"`
	Metadata         SchemaMetadata    `json:"metadata" yaml:"metadata"`
	ValidationStatus ValidationStatus  `json:"validationStatus" yaml:"validationStatus"`
}

// SchemaRef identifies a schema inside a result.
type SchemaRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Severity ranks findings and suggestions.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CircularReferenceType distinguishes two-schema cycles from longer ones.
type CircularReferenceType string

const (
	CircularReferenceDirect   CircularReferenceType = "direct"
	CircularReferenceIndirect CircularReferenceType = "indirect"
)

// CircularReference is one unique cycle in the named-reference relation.
// Path lists schema names starting at the lexicographically smallest schema id;
// the closing edge back to Path[0] is implied.
type CircularReference struct {
	Path     []string              `json:"path" yaml:"path"`
	Depth    int                   `json:"depth" yaml:"depth"`
	Type     CircularReferenceType `json:"type" yaml:"type"`
	Severity Severity              `json:"severity" yaml:"severity"`
}

// ComplexityMetrics are the structural metrics of a single schema.
type ComplexityMetrics struct {
	SchemaID           string `json:"schemaId" yaml:"schemaId"`
	SchemaName         string `json:"schemaName" yaml:"schemaName"`
	PropertyCount      int    `json:"propertyCount" yaml:"propertyCount"`
	MaxDepth           int    `json:"maxDepth" yaml:"maxDepth"`
	RequiredProperties int    `json:"requiredProperties" yaml:"requiredProperties"`
	OptionalProperties int    `json:"optionalProperties" yaml:"optionalProperties"`
	ReferenceCount     int    `json:"referenceCount" yaml:"referenceCount"`
	SizeBytes          int    `json:"sizeBytes" yaml:"sizeBytes"`
	ComplexityScore    int    `json:"complexityScore" yaml:"complexityScore"`
}

// EdgeType classifies a reference edge by the shape of its $ref string.
type EdgeType string

const (
	EdgeTypeDirect EdgeType = "direct"
	EdgeTypeNested EdgeType = "nested"
)

// GraphNode is a schema in the reference graph.
type GraphNode struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	InDegree   int     `json:"inDegree" yaml:"inDegree"`
	OutDegree  int     `json:"outDegree" yaml:"outDegree"`
	Centrality float64 `json:"centrality" yaml:"centrality"`
}

// GraphEdge is a resolved reference from Source to Target (both schema ids).
type GraphEdge struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Path   string   `json:"path" yaml:"path"`
	Type   EdgeType `json:"type" yaml:"type"`
}

// GraphMetrics summarizes the reference graph.
type GraphMetrics struct {
	NodeCount           int     `json:"nodeCount" yaml:"nodeCount"`
	EdgeCount           int     `json:"edgeCount" yaml:"edgeCount"`
	Density             float64 `json:"density" yaml:"density"`
	AverageDegree       float64 `json:"averageDegree" yaml:"averageDegree"`
	ConnectedComponents int     `json:"connectedComponents" yaml:"connectedComponents"`
}

// ReferenceGraph is the directed graph of resolved schema references.
type ReferenceGraph struct {
	Nodes   []GraphNode  `json:"nodes" yaml:"nodes"`
	Edges   []GraphEdge  `json:"edges" yaml:"edges"`
	Metrics GraphMetrics `json:"metrics" yaml:"metrics"`
}

// Node returns the graph node with the given schema id.
func (g *ReferenceGraph) Node(id string) (GraphNode, bool) {
	if g == nil {
		return GraphNode{}, false
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// NodeByName returns the first graph node with the given schema name.
func (g *ReferenceGraph) NodeByName(name string) (GraphNode, bool) {
	if g == nil {
		return GraphNode{}, false
	}
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return GraphNode{}, false
}

// DuplicateGroup is a set of at least two structurally identical schemas.
type DuplicateGroup struct {
	Signature string      `json:"signature" yaml:"signature"`
	Schemas   []SchemaRef `json:"schemas" yaml:"schemas"`
}

// NearDuplicatePair is two schemas whose field signatures largely overlap.
type NearDuplicatePair struct {
	SchemaA       SchemaRef `json:"schemaA" yaml:"schemaA"`
	SchemaB       SchemaRef `json:"schemaB" yaml:"schemaB"`
	Similarity    float64   `json:"similarity" yaml:"similarity"`
	OverlapFields int       `json:"overlapFields" yaml:"overlapFields"`
	UnionFields   int       `json:"unionFields" yaml:"unionFields"`
}

// NameSimilarGroup is a set of schemas whose names share a token.
type NameSimilarGroup struct {
	Token             string      `json:"token" yaml:"token"`
	SuggestedName     string      `json:"suggestedName" yaml:"suggestedName"`
	Schemas           []SchemaRef `json:"schemas" yaml:"schemas"`
	AverageSimilarity float64     `json:"averageSimilarity" yaml:"averageSimilarity"`
}

// FieldConflicts flags the kinds of disagreement observed for one field name.
type FieldConflicts struct {
	Type        bool `json:"typeConflict" yaml:"typeConflict"`
	Format      bool `json:"formatConflict" yaml:"formatConflict"`
	Enum        bool `json:"enumConflict" yaml:"enumConflict"`
	Required    bool `json:"requiredConflict" yaml:"requiredConflict"`
	Description bool `json:"descriptionDivergence" yaml:"descriptionDivergence"`
}

// Any reports whether at least one conflict flag is set.
func (c FieldConflicts) Any() bool {
	return c.Type || c.Format || c.Enum || c.Required || c.Description
}

// FieldInsight aggregates every occurrence of a property name across the project.
type FieldInsight struct {
	Name         string         `json:"name" yaml:"name"`
	Types        []string       `json:"types" yaml:"types"`
	Formats      []string       `json:"formats" yaml:"formats"`
	EnumSets     []string       `json:"enumSets" yaml:"enumSets"`
	EnumValues   []string       `json:"enumValues" yaml:"enumValues"`
	RequiredIn   []string       `json:"requiredIn" yaml:"requiredIn"`
	OptionalIn   []string       `json:"optionalIn" yaml:"optionalIn"`
	Descriptions []string       `json:"descriptions" yaml:"descriptions"`
	Occurrences  int            `json:"occurrences" yaml:"occurrences"`
	Conflicts    FieldConflicts `json:"conflicts" yaml:"conflicts"`
}

// FieldConflictSummary counts conflicts project-wide.
type FieldConflictSummary struct {
	TotalFields           int `json:"totalFields" yaml:"totalFields"`
	FieldsWithConflicts   int `json:"fieldsWithConflicts" yaml:"fieldsWithConflicts"`
	TypeConflicts         int `json:"typeConflicts" yaml:"typeConflicts"`
	FormatConflicts       int `json:"formatConflicts" yaml:"formatConflicts"`
	EnumConflicts         int `json:"enumConflicts" yaml:"enumConflicts"`
	RequiredConflicts     int `json:"requiredConflicts" yaml:"requiredConflicts"`
	DescriptionDivergence int `json:"descriptionDivergence" yaml:"descriptionDivergence"`
}

// FieldAnalysis is the output of the field consistency pass.
type FieldAnalysis struct {
	Fields  []FieldInsight       `json:"fields" yaml:"fields"`
	Summary FieldConflictSummary `json:"summary" yaml:"summary"`
}

// Field returns the insight for the given field name.
func (a *FieldAnalysis) Field(name string) (FieldInsight, bool) {
	if a == nil {
		return FieldInsight{}, false
	}
	for _, f := range a.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInsight{}, false
}

// InlineDuplicate is an inline sub-structure repeated across several schemas.
type InlineDuplicate struct {
	Signature     string   `json:"signature" yaml:"signature"`
	ParentSchemas []string `json:"parentSchemas" yaml:"parentSchemas"`
}

// SuggestionCategory groups suggestions by the kind of improvement.
type SuggestionCategory string

const (
	SuggestionCategoryNaming           SuggestionCategory = "naming"
	SuggestionCategoryReuse            SuggestionCategory = "reuse"
	SuggestionCategoryFieldConsistency SuggestionCategory = "field-consistency"
	SuggestionCategoryReferences       SuggestionCategory = "references"
	SuggestionCategoryComplexity       SuggestionCategory = "complexity"
)

// Suggestion is a ranked, human-readable improvement recommendation.
type Suggestion struct {
	ID              string             `json:"id" yaml:"id"`
	Category        SuggestionCategory `json:"category" yaml:"category"`
	Title           string             `json:"title" yaml:"title"`
	Description     string             `json:"description" yaml:"description"`
	Severity        Severity           `json:"severity" yaml:"severity"`
	ImpactScore     int                `json:"impactScore" yaml:"impactScore"`
	AffectedSchemas []string           `json:"affectedSchemas" yaml:"affectedSchemas"`
	Data            map[string]any     `json:"data,omitempty" yaml:"data,omitempty"`
}

// ProjectMetrics are project-wide totals and rankings.
type ProjectMetrics struct {
	TotalSchemas          int      `json:"totalSchemas" yaml:"totalSchemas"`
	ValidSchemas          int      `json:"validSchemas" yaml:"validSchemas"`
	InvalidSchemas        int      `json:"invalidSchemas" yaml:"invalidSchemas"`
	TotalProperties       int      `json:"totalProperties" yaml:"totalProperties"`
	TotalReferences       int      `json:"totalReferences" yaml:"totalReferences"`
	TotalSizeBytes        int      `json:"totalSizeBytes" yaml:"totalSizeBytes"`
	AverageComplexity     float64  `json:"averageComplexity" yaml:"averageComplexity"`
	AverageDepth          float64  `json:"averageDepth" yaml:"averageDepth"`
	AveragePropertyCount  float64  `json:"averagePropertyCount" yaml:"averagePropertyCount"`
	MostComplexSchemas    []string `json:"mostComplexSchemas" yaml:"mostComplexSchemas"`
	MostReferencedSchemas []string `json:"mostReferencedSchemas" yaml:"mostReferencedSchemas"`
	OrphanedSchemas       []string `json:"orphanedSchemas" yaml:"orphanedSchemas"`
	CircularSchemas       []string `json:"circularSchemas" yaml:"circularSchemas"`
}

// PerformanceMetrics describe one analysis run.
type PerformanceMetrics struct {
	AnalysisDuration time.Duration `json:"analysisDuration" yaml:"analysisDuration"`
	MemoryUsageBytes int64         `json:"memoryUsageBytes" yaml:"memoryUsageBytes"`
	Timestamp        time.Time     `json:"timestamp" yaml:"timestamp"`
}

// AnalyticsResult aggregates every analysis pass over one schema collection.
type AnalyticsResult struct {
	CircularReferences []CircularReference           `json:"circularReferences" yaml:"circularReferences"`
	ComplexityMetrics  map[string]ComplexityMetrics `json:"complexityMetrics" yaml:"complexityMetrics"`
	ReferenceGraph     ReferenceGraph                `json:"referenceGraph" yaml:"referenceGraph"`
	DuplicateGroups    []DuplicateGroup              `json:"duplicateGroups" yaml:"duplicateGroups"`
	NearDuplicates     []NearDuplicatePair           `json:"nearDuplicates" yaml:"nearDuplicates"`
	NameSimilarGroups  []NameSimilarGroup            `json:"nameSimilarGroups" yaml:"nameSimilarGroups"`
	FieldAnalysis      FieldAnalysis                 `json:"fieldAnalysis" yaml:"fieldAnalysis"`
	InlineDuplicates   []InlineDuplicate             `json:"inlineDuplicates" yaml:"inlineDuplicates"`
	Suggestions        []Suggestion                  `json:"suggestions" yaml:"suggestions"`
	ProjectMetrics     ProjectMetrics                `json:"projectMetrics" yaml:"projectMetrics"`
	Performance        PerformanceMetrics            `json:"performance" yaml:"performance"`
	MaturityScore      int                           `json:"maturityScore" yaml:"maturityScore"`
}

// CacheStats describes the analysis result cache.
type CacheStats struct {
	Size int      `json:"size" yaml:"size"`
	Keys []string `json:"keys" yaml:"keys"`
}
