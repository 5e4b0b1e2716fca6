package dto

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types -package dto -o dto.gen.go ../../../../api/openapi.yaml
