package gtm

import "strings"

// Kind names a Tag Manager resource collection
type Kind string

const (
	KindAccounts         Kind = "accounts"
	KindContainers       Kind = "containers"
	KindWorkspaces       Kind = "workspaces"
	KindTags             Kind = "tags"
	KindTriggers         Kind = "triggers"
	KindVariables        Kind = "variables"
	KindBuiltInVariables Kind = "builtInVariables"
)

// ContainerURLPrefix prefixes a resource path to form its Tag Manager UI link
const ContainerURLPrefix = "https://tagmanager.google.com/#/container/"

// ChildPath joins a parent path, a collection and an id
func ChildPath(parent string, kind Kind, id string) string {
	return strings.TrimSuffix(parent, "/") + "/" + string(kind) + "/" + id
}

// LastSegment returns the final path element, which is the entity id
func LastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ContainerURL returns the Tag Manager UI link for a resource path
func ContainerURL(path string) string {
	return ContainerURLPrefix + path
}
