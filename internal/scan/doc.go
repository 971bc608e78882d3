// Package scan turns one type descriptor into its composed field table:
// it classifies each member (attribute, property element, child element,
// text content, ignored), builds access policies, walks the ancestor
// chain of inheritance-enabled types and detects every mapping conflict
// the composed result would carry.
package scan
