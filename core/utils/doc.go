// Package utils provides common utility functions for the catalog-sync application.
// It includes helpers for value conversion of loosely typed remote payloads and
// phone-number normalisation shared by the CRM feature.
package utils
