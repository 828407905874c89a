// Package docs builds the OpenAPI 3.0 description of the gadget API.
package docs

import (
	"gopkg.in/yaml.v3"
)

// OpenAPIDocument represents the complete OpenAPI 3.0 specification.
type OpenAPIDocument struct {
	OpenAPI    string              `yaml:"openapi"`
	Info       InfoObject          `yaml:"info"`
	Servers    []ServerObject      `yaml:"servers"`
	Paths      map[string]PathItem `yaml:"paths"`
	Components ComponentsObject    `yaml:"components"`
	Tags       []TagObject         `yaml:"tags"`
}

// InfoObject contains API metadata.
type InfoObject struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// ServerObject defines an API server.
type ServerObject struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// ComponentsObject holds reusable objects.
type ComponentsObject struct {
	Schemas         map[string]Schema         `yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `yaml:"securitySchemes"`
}

// SecurityScheme describes how requests authenticate.
type SecurityScheme struct {
	Type         string `yaml:"type"`
	Scheme       string `yaml:"scheme"`
	BearerFormat string `yaml:"bearerFormat,omitempty"`
}

// TagObject defines an API tag.
type TagObject struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// PathItem describes operations available on a path.
type PathItem struct {
	Get    *Operation `yaml:"get,omitempty"`
	Post   *Operation `yaml:"post,omitempty"`
	Patch  *Operation `yaml:"patch,omitempty"`
	Delete *Operation `yaml:"delete,omitempty"`
}

// Operation describes a single API operation.
type Operation struct {
	Summary     string                `yaml:"summary"`
	Tags        []string              `yaml:"tags,omitempty"`
	Security    []map[string][]string `yaml:"security,omitempty"`
	Parameters  []Parameter           `yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty"`
	Responses   map[string]Response   `yaml:"responses"`
}

// Parameter describes an operation parameter.
type Parameter struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Required    bool   `yaml:"required,omitempty"`
	Description string `yaml:"description,omitempty"`
	Schema      Schema `yaml:"schema"`
}

// RequestBody describes a JSON request body.
type RequestBody struct {
	Required bool                 `yaml:"required,omitempty"`
	Content  map[string]MediaType `yaml:"content"`
}

// Response describes an operation response.
type Response struct {
	Description string               `yaml:"description"`
	Content     map[string]MediaType `yaml:"content,omitempty"`
}

// MediaType describes a media type and schema.
type MediaType struct {
	Schema Schema `yaml:"schema"`
}

// Schema is the subset of JSON Schema used by this API.
type Schema struct {
	Ref        string            `yaml:"$ref,omitempty"`
	Type       string            `yaml:"type,omitempty"`
	Format     string            `yaml:"format,omitempty"`
	Nullable   bool              `yaml:"nullable,omitempty"`
	Enum       []string          `yaml:"enum,omitempty"`
	Example    string            `yaml:"example,omitempty"`
	Required   []string          `yaml:"required,omitempty"`
	Properties map[string]Schema `yaml:"properties,omitempty"`
	Items      *Schema           `yaml:"items,omitempty"`
}

var bearer = []map[string][]string{{"bearerAuth": {}}}

func ref(name string) Schema {
	return Schema{Ref: "#/components/schemas/" + name}
}

func jsonBody(s Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}

func errorResponse(description string) Response {
	return Response{Description: description, Content: jsonBody(ref("Error"))}
}

var idParam = Parameter{
	Name:     "id",
	In:       "path",
	Required: true,
	Schema:   Schema{Type: "string", Format: "uuid"},
}

// Document builds the OpenAPI description of every route. statuses lists
// the gadget status enum.
func Document(statuses []string) OpenAPIDocument {
	return OpenAPIDocument{
		OpenAPI: "3.0.3",
		Info: InfoObject{
			Title:       "IMF Gadget API",
			Description: "Gadget inventory with bearer-token authentication",
			Version:     "1.0.0",
		},
		Servers: []ServerObject{
			{URL: "http://localhost:3000", Description: "Development server"},
		},
		Paths:      buildPaths(),
		Components: buildComponents(statuses),
		Tags: []TagObject{
			{Name: "auth", Description: "Registration and login"},
			{Name: "gadgets", Description: "Gadget inventory and lifecycle"},
			{Name: "ops", Description: "Health, metrics and documentation"},
		},
	}
}

func buildPaths() map[string]PathItem {
	credentials := &RequestBody{Required: true, Content: jsonBody(ref("Credentials"))}
	gadgetInput := &RequestBody{Content: jsonBody(ref("GadgetInput"))}

	return map[string]PathItem{
		"/": {Get: &Operation{
			Summary: "Liveness banner",
			Tags:    []string{"ops"},
			Responses: map[string]Response{
				"200": {Description: "Banner text", Content: map[string]MediaType{"text/plain": {Schema: Schema{Type: "string"}}}},
			},
		}},
		"/health": {Get: &Operation{
			Summary:   "Health check",
			Tags:      []string{"ops"},
			Responses: map[string]Response{"200": {Description: "Service is up", Content: jsonBody(Schema{Type: "object"})}},
		}},
		"/register": {Post: &Operation{
			Summary:     "Register a user",
			Tags:        []string{"auth"},
			RequestBody: credentials,
			Responses: map[string]Response{
				"201": {Description: "User registered", Content: jsonBody(ref("Message"))},
				"400": errorResponse("Email and password are required"),
				"409": errorResponse("User already exists"),
				"500": errorResponse("Registration failed"),
			},
		}},
		"/login": {Post: &Operation{
			Summary:     "Log in and receive a bearer token",
			Tags:        []string{"auth"},
			RequestBody: credentials,
			Responses: map[string]Response{
				"200": {Description: "Token issued", Content: jsonBody(ref("Token"))},
				"400": errorResponse("Email and password are required"),
				"401": errorResponse("Invalid credentials"),
				"500": errorResponse("Login failed"),
			},
		}},
		"/gadgets": {
			Get: &Operation{
				Summary:  "List gadgets",
				Tags:     []string{"gadgets"},
				Security: bearer,
				Parameters: []Parameter{{
					Name:        "status",
					In:          "query",
					Description: "Only return gadgets with exactly this status",
					Schema:      Schema{Type: "string"},
				}},
				Responses: map[string]Response{
					"200": {Description: "Gadgets", Content: jsonBody(Schema{Type: "array", Items: &Schema{Ref: "#/components/schemas/GadgetView"}})},
					"401": errorResponse("No token provided"),
					"403": errorResponse("Invalid token"),
					"500": errorResponse("Failed to fetch gadgets"),
				},
			},
			Post: &Operation{
				Summary:     "Create a gadget",
				Tags:        []string{"gadgets"},
				Security:    bearer,
				RequestBody: gadgetInput,
				Responses: map[string]Response{
					"201": {Description: "Created gadget", Content: jsonBody(ref("Gadget"))},
					"400": errorResponse("Invalid gadget status"),
					"500": errorResponse("Failed to create gadget"),
				},
			},
		},
		"/gadgets/{id}": {
			Patch: &Operation{
				Summary:     "Update a gadget's name or status",
				Tags:        []string{"gadgets"},
				Security:    bearer,
				Parameters:  []Parameter{idParam},
				RequestBody: gadgetInput,
				Responses: map[string]Response{
					"200": {Description: "Updated gadget", Content: jsonBody(ref("Gadget"))},
					"400": errorResponse("Invalid gadget status"),
					"404": errorResponse("Gadget not found or update failed"),
				},
			},
			Delete: &Operation{
				Summary:    "Decommission a gadget",
				Tags:       []string{"gadgets"},
				Security:   bearer,
				Parameters: []Parameter{idParam},
				Responses: map[string]Response{
					"200": {Description: "Decommissioned gadget", Content: jsonBody(ref("Decommissioned"))},
					"404": errorResponse("Gadget not found or decommission failed"),
				},
			},
		},
		"/gadgets/{id}/self-destruct": {Post: &Operation{
			Summary:    "Trigger a simulated self-destruct sequence",
			Tags:       []string{"gadgets"},
			Security:   bearer,
			Parameters: []Parameter{idParam},
			Responses: map[string]Response{
				"200": {Description: "Sequence initiated", Content: jsonBody(ref("SelfDestruct"))},
				"404": errorResponse("Gadget not found"),
				"500": errorResponse("Failed to initiate self-destruct sequence"),
			},
		}},
		"/events/stats": {Get: &Operation{
			Summary:   "Lifecycle event bus statistics",
			Tags:      []string{"gadgets"},
			Security:  bearer,
			Responses: map[string]Response{"200": {Description: "Statistics", Content: jsonBody(Schema{Type: "object"})}},
		}},
		"/ws/gadgets": {Get: &Operation{
			Summary:   "WebSocket stream of gadget lifecycle events",
			Tags:      []string{"gadgets"},
			Security:  bearer,
			Responses: map[string]Response{"101": {Description: "Switching protocols"}},
		}},
		"/metrics": {Get: &Operation{
			Summary:   "Prometheus metrics",
			Tags:      []string{"ops"},
			Responses: map[string]Response{"200": {Description: "Metrics in text exposition format"}},
		}},
		"/docs/openapi.yaml": {Get: &Operation{
			Summary:   "This document",
			Tags:      []string{"ops"},
			Responses: map[string]Response{"200": {Description: "OpenAPI YAML"}},
		}},
	}
}

func buildComponents(statuses []string) ComponentsObject {
	str := Schema{Type: "string"}
	return ComponentsObject{
		SecuritySchemes: map[string]SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
		Schemas: map[string]Schema{
			"Error":   {Type: "object", Required: []string{"error"}, Properties: map[string]Schema{"error": str}},
			"Message": {Type: "object", Required: []string{"message"}, Properties: map[string]Schema{"message": str}},
			"Token":   {Type: "object", Required: []string{"token"}, Properties: map[string]Schema{"token": str}},
			"Credentials": {
				Type:     "object",
				Required: []string{"email", "password"},
				Properties: map[string]Schema{
					"email":    {Type: "string", Format: "email"},
					"password": {Type: "string", Format: "password"},
				},
			},
			"GadgetInput": {
				Type: "object",
				Properties: map[string]Schema{
					"name":   {Type: "string", Example: "The Kraken"},
					"status": {Type: "string", Enum: statuses},
				},
			},
			"Gadget": {
				Type: "object",
				Properties: map[string]Schema{
					"id":               {Type: "string", Format: "uuid"},
					"name":             str,
					"status":           {Type: "string", Enum: statuses},
					"decommissionedAt": {Type: "string", Format: "date-time", Nullable: true},
					"createdAt":        {Type: "string", Format: "date-time"},
					"updatedAt":        {Type: "string", Format: "date-time"},
				},
			},
			"GadgetView": {
				Type: "object",
				Properties: map[string]Schema{
					"id":                        {Type: "string", Format: "uuid"},
					"name":                      str,
					"status":                    {Type: "string", Enum: statuses},
					"decommissionedAt":          {Type: "string", Format: "date-time", Nullable: true},
					"missionSuccessProbability": {Type: "string", Example: "87% success probability"},
				},
			},
			"Decommissioned": {
				Type:       "object",
				Properties: map[string]Schema{"message": str, "gadget": ref("Gadget")},
			},
			"SelfDestruct": {
				Type: "object",
				Properties: map[string]Schema{
					"message":          str,
					"confirmationCode": {Type: "string", Example: "482913"},
				},
			},
		},
	}
}

// YAML renders the document
func YAML(doc OpenAPIDocument) ([]byte, error) {
	return yaml.Marshal(doc)
}
