package tracker

// Collection represents a named partition of the remote document database.
// The set is closed; collaborator services address storage through these
// values only, never through raw strings.
type Collection int

const (
	CollectionUnknown Collection = iota
	CollectionUsers
	CollectionIncidents
	CollectionSchools
	CollectionStudents
)

// String returns the storage-collection name
func (c Collection) String() string {
	switch c {
	case CollectionUsers:
		return "users"
	case CollectionIncidents:
		return "incidents"
	case CollectionSchools:
		return "schools"
	case CollectionStudents:
		return "students"
	default:
		return "unknown"
	}
}

// ParseCollection parses a storage-collection name to Collection
func ParseCollection(s string) Collection {
	switch s {
	case "users":
		return CollectionUsers
	case "incidents":
		return CollectionIncidents
	case "schools":
		return CollectionSchools
	case "students":
		return CollectionStudents
	default:
		return CollectionUnknown
	}
}

// Collections returns every known collection in a fixed order
func Collections() []Collection {
	return []Collection{
		CollectionUsers,
		CollectionIncidents,
		CollectionSchools,
		CollectionStudents,
	}
}
