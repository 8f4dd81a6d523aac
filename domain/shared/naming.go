package shared

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 200
)

var (
	namePattern        = regexp.MustCompile(`^[\p{L}\p{N} \-'&.,()]+$`)
	descriptionPattern = regexp.MustCompile(`^[\p{L}\p{N} \-'&.,()!?]*$`)
)

// NormalizeName 去除首尾空白并校验名称
func NormalizeName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError(entity, "name", entity+" name must not be blank")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", NewValidationError(entity, "name", entity+" name must be at most 100 characters")
	}
	if !namePattern.MatchString(name) {
		return "", NewValidationError(entity, "name", entity+" name contains invalid characters")
	}
	return name, nil
}

// NormalizeDescription 去除首尾空白并校验描述，允许为空
func NormalizeDescription(entity, description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", NewValidationError(entity, "description", entity+" description must be at most 200 characters")
	}
	if !descriptionPattern.MatchString(description) {
		return "", NewValidationError(entity, "description", entity+" description contains invalid characters")
	}
	return description, nil
}

// NameLookup 按名称查找实体标识，不存在时返回 ErrNotFound
type NameLookup func(ctx context.Context, name string) (string, error)

// EnsureNameAvailable 名称在同类实体中唯一；selfID 为更新场景下的自身标识
func EnsureNameAvailable(ctx context.Context, entity, name, selfID string, lookup NameLookup) error {
	ownerID, err := lookup(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ownerID == selfID {
		return nil
	}
	return NewConflictError(entity, "a "+entity+" named '"+name+"' already exists")
}
