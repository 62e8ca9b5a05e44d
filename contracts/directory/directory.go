// Package directory is the JSON wire contract between the enrollment service
// and the services it validates against: the course catalog and the student
// directory. The stand-in services under mocks/ serve exactly these shapes.
package directory

// Envelope statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Lookup paths relative to each service's base address.
const (
	CoursePathPrefix  = "/api/courses/"
	StudentPathPrefix = "/api/students/studentId/"
	HealthPath        = "/actuator/health"
)

// Envelope wraps every lookup response. Data is absent on errors.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

// Course is the catalog's course representation.
type Course struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Title          string `json:"title"`
	InstructorName string `json:"instructorName,omitempty"`
	Capacity       *int   `json:"capacity"`
	Enrolled       *int   `json:"enrolled"`
}

// Student is the directory's student representation.
type Student struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Major     string `json:"major,omitempty"`
}

// Health is the body of HealthPath.
type Health struct {
	Status string `json:"status"`
}

// Success wraps data in a SUCCESS envelope.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Status: StatusSuccess, Data: &data}
}

// Failure builds an ERROR envelope.
func Failure[T any](message string) Envelope[T] {
	return Envelope[T]{Status: StatusError, Message: message}
}

// IntPtr is a convenience for building Course literals.
func IntPtr(v int) *int { return &v }
