package api

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/service"
)

// OpenAPIVersion is the version of the OpenAPI format produced by BuildOpenAPI.
const OpenAPIVersion = "3.0.3"

const jsonContentType = "application/json"

// BodyDoc names a JSON body and gives an example value of its Go type.
type BodyDoc struct {
	Name  string
	Value any
}

// ParamDoc describes a path or query parameter.
type ParamDoc struct {
	Name        string
	In          string // "path" or "query"
	Description string
	Required    bool
	Type        string
	Format      string
	Enum        []any
}

// ResponseDoc describes one response of a route. Body is nil for empty responses.
type ResponseDoc struct {
	Description string
	Body        *BodyDoc
}

// RouteDoc describes one HTTP route independently of its handler.
type RouteDoc struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tags        []string
	Params      []ParamDoc
	Request     *BodyDoc
	Responses   map[int]ResponseDoc
}

var (
	taskBody      = &BodyDoc{Name: "Task", Value: domain.Task{}}
	taskPageBody  = &BodyDoc{Name: "TaskPage", Value: paginate.Paginated[*domain.Task]{}}
	taskReqBody   = &BodyDoc{Name: "TaskRequest", Value: TaskRequest{}}
	createdBody   = &BodyDoc{Name: "CreateTaskResponse", Value: CreateTaskResponse{}}
	errorBody     = &BodyDoc{Name: "ErrorResponse", Value: shared.ErrorResponse{}}
	taskIDParam   = ParamDoc{Name: TaskIDParam, In: "path", Required: true, Type: "string", Format: "uuid", Description: "Task id"}
	badRequest    = ResponseDoc{Description: "Validation failed", Body: errorBody}
	notFound      = ResponseDoc{Description: "Task not found", Body: errorBody}
	internalError = ResponseDoc{Description: "Unexpected error", Body: errorBody}
)

// TaskRoutes documents the task endpoints.
var TaskRoutes = []RouteDoc{
	{
		Method:      http.MethodGet,
		Path:        "/tasks",
		OperationID: "listTasks",
		Summary:     "List tasks",
		Tags:        []string{"tasks"},
		Params: []ParamDoc{
			{Name: paginate.ParamPage, In: "query", Type: "integer", Description: "Page number, starting at 1"},
			{
				Name:        paginate.ParamLimit,
				In:          "query",
				Type:        "integer",
				Description: "Page size, at most " + strconv.Itoa(service.TaskListMaxLimit),
			},
			{Name: paginate.ParamSortBy, In: "query", Type: "string", Description: "column:ASC or column:DESC; sortable: status"},
			{
				Name:        paginate.FilterParamPrefix + "status",
				In:          "query",
				Type:        "string",
				Description: "$eq:<status> or <status>",
			},
		},
		Responses: map[int]ResponseDoc{
			http.StatusOK:                  {Description: "One page of tasks", Body: taskPageBody},
			http.StatusInternalServerError: internalError,
		},
	},
	{
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		OperationID: "getTask",
		Summary:     "Get a task; an empty object when it does not exist",
		Tags:        []string{"tasks"},
		Params:      []ParamDoc{taskIDParam},
		Responses: map[int]ResponseDoc{
			http.StatusOK:                  {Description: "The task or an empty object", Body: taskBody},
			http.StatusBadRequest:          badRequest,
			http.StatusInternalServerError: internalError,
		},
	},
	{
		Method:      http.MethodPost,
		Path:        "/tasks",
		OperationID: "createTask",
		Summary:     "Create a task",
		Tags:        []string{"tasks"},
		Request:     taskReqBody,
		Responses: map[int]ResponseDoc{
			http.StatusCreated:             {Description: "Id of the new task", Body: createdBody},
			http.StatusBadRequest:          badRequest,
			http.StatusInternalServerError: internalError,
		},
	},
	{
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		OperationID: "updateTask",
		Summary:     "Replace the title, description and status of a task",
		Tags:        []string{"tasks"},
		Params:      []ParamDoc{taskIDParam},
		Request:     taskReqBody,
		Responses: map[int]ResponseDoc{
			http.StatusNoContent:           {Description: "Updated"},
			http.StatusBadRequest:          badRequest,
			http.StatusNotFound:            notFound,
			http.StatusInternalServerError: internalError,
		},
	},
	{
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		OperationID: "deleteTask",
		Summary:     "Delete a task",
		Tags:        []string{"tasks"},
		Params:      []ParamDoc{taskIDParam},
		Responses: map[int]ResponseDoc{
			http.StatusNoContent:           {Description: "Deleted"},
			http.StatusBadRequest:          badRequest,
			http.StatusNotFound:            notFound,
			http.StatusInternalServerError: internalError,
		},
	},
	{
		Method:      http.MethodGet,
		Path:        "/health",
		OperationID: "health",
		Summary:     "Liveness probe",
		Tags:        []string{"system"},
		Responses: map[int]ResponseDoc{
			http.StatusOK: {Description: "OK"},
		},
	},
}

// OpenAPIDocument is the subset of OpenAPI 3.0 produced by BuildOpenAPI.
type OpenAPIDocument struct {
	OpenAPI    string                           `json:"openapi"`
	Info       OpenAPIInfo                      `json:"info"`
	Paths      map[string]map[string]*Operation `json:"paths"`
	Components Components                       `json:"components"`
}

// OpenAPIInfo is the document's info object.
type OpenAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Operation is one method on one path.
type Operation struct {
	OperationID string              `json:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Parameter is an operation parameter.
type Parameter struct {
	Name        string             `json:"name"`
	In          string             `json:"in"`
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required,omitempty"`
	Schema      *jsonschema.Schema `json:"schema"`
}

// RequestBody is an operation's request body.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Response is one operation response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType holds the schema of a body.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// Components holds the named body schemas.
type Components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

var (
	uuidType      = reflect.TypeOf(uuid.UUID{})
	sortOrderType = reflect.TypeOf(paginate.SortOrder{})
)

// newSchemaReflector returns a reflector producing inline OpenAPI-compatible
// schemas. UUIDs map to formatted strings and sort orders to pairs.
func newSchemaReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case uuidType:
				return &jsonschema.Schema{Type: "string", Format: "uuid"}
			case sortOrderType:
				two := uint64(2)
				return &jsonschema.Schema{
					Type:     "array",
					Items:    &jsonschema.Schema{Type: "string"},
					MinItems: &two,
					MaxItems: &two,
				}
			}
			return nil
		},
	}
}

// BuildOpenAPI renders routes as an OpenAPI 3.0 document. Body schemas are
// generated from the Go types named in the route table.
func BuildOpenAPI(title, version string, routes []RouteDoc) *OpenAPIDocument {
	reflector := newSchemaReflector()
	doc := &OpenAPIDocument{
		OpenAPI:    OpenAPIVersion,
		Info:       OpenAPIInfo{Title: title, Version: version},
		Paths:      map[string]map[string]*Operation{},
		Components: Components{Schemas: map[string]*jsonschema.Schema{}},
	}

	ref := func(b *BodyDoc) map[string]MediaType {
		if _, ok := doc.Components.Schemas[b.Name]; !ok {
			s := reflector.Reflect(b.Value)
			s.Version = ""
			doc.Components.Schemas[b.Name] = s
		}
		return map[string]MediaType{
			jsonContentType: {Schema: &jsonschema.Schema{Ref: "#/components/schemas/" + b.Name}},
		}
	}

	for _, route := range routes {
		op := &Operation{
			OperationID: route.OperationID,
			Summary:     route.Summary,
			Tags:        route.Tags,
			Responses:   map[string]Response{},
		}
		for _, p := range route.Params {
			op.Parameters = append(op.Parameters, Parameter{
				Name:        p.Name,
				In:          p.In,
				Description: p.Description,
				Required:    p.Required || p.In == "path",
				Schema:      &jsonschema.Schema{Type: p.Type, Format: p.Format, Enum: p.Enum},
			})
		}
		if route.Request != nil {
			op.RequestBody = &RequestBody{Required: true, Content: ref(route.Request)}
		}
		for status, resp := range route.Responses {
			r := Response{Description: resp.Description}
			if resp.Body != nil {
				r.Content = ref(resp.Body)
			}
			op.Responses[strconv.Itoa(status)] = r
		}

		methods, ok := doc.Paths[route.Path]
		if !ok {
			methods = map[string]*Operation{}
			doc.Paths[route.Path] = methods
		}
		methods[strings.ToLower(route.Method)] = op
	}

	return doc
}

// OpenAPIHandler serves doc as JSON.
func OpenAPIHandler(doc *OpenAPIDocument) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, doc)
	}
}
