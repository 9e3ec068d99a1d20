// Package services implements the engine core: ingestion, ranking,
// sentence extraction and answer assembly. Services depend only on the
// driven ports and are exercised through the driving interfaces.
package services
