// Package shipment contains the Shipment aggregate and its stage pipeline.
//
// A shipment moves through Placed, Confirmed, InTransit, OutForDelivery and
// Delivered, with Failed terminal from any non-terminal stage. Advancement is
// strictly one stage at a time, each stage records its timestamp, and the
// final Delivered stage is only reachable through PIN verification.
package shipment
