package common

// 1.0.0  2024.11.20   emission schedule, raffle/tapping pools
// 1.1.0  2025.01.15   two-phase ownership transfer, checked arithmetic
// 1.2.0  2025.03.02   event journal
const EMISSION_ENGINE_VERSION = "1.2.0"

// 1.0.0  gob records
// 1.1.0  cbor records, event journal keyed by sequence
const STATE_DB_VERSION = "1.1.0"
