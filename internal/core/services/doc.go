// Package services implements the core business logic of dropsearch:
// remote document enumeration, shared-link resolution, content fetching,
// the sync orchestration pipeline and the search query path. Services
// depend only on domain types and port interfaces; infrastructure is
// injected through constructors.
package services
