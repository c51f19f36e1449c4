package enum

// ParseBillStatus converts a status string into a BillStatus
func ParseBillStatus(s string) (BillStatus, bool) {
	switch s {
	case "pending":
		return BillStatusPending, true
	case "partial":
		return BillStatusPartial, true
	case "paid":
		return BillStatusPaid, true
	case "active":
		return BillStatusActive, true
	}
	return 0, false
}

// ParseReceiptStatus converts a status string into a ReceiptStatus
func ParseReceiptStatus(s string) (ReceiptStatus, bool) {
	switch s {
	case "active":
		return ReceiptStatusActive, true
	case "voided":
		return ReceiptStatusVoided, true
	case "refunded":
		return ReceiptStatusRefunded, true
	}
	return 0, false
}

// ParseQueueStatus converts a status string into a QueueStatus
func ParseQueueStatus(s string) (QueueStatus, bool) {
	switch s {
	case "waiting":
		return QueueStatusWaiting, true
	case "in-progress":
		return QueueStatusInProgress, true
	case "completed":
		return QueueStatusCompleted, true
	case "cancelled":
		return QueueStatusCancelled, true
	}
	return 0, false
}

// ParseVisitStatus converts a status string into a VisitStatus
func ParseVisitStatus(s string) (VisitStatus, bool) {
	switch s {
	case "open":
		return VisitStatusOpen, true
	case "closed":
		return VisitStatusClosed, true
	}
	return 0, false
}

// ParseShiftStatus converts a status string into a ShiftStatus
func ParseShiftStatus(s string) (ShiftStatus, bool) {
	switch s {
	case "open":
		return ShiftStatusOpen, true
	case "closed":
		return ShiftStatusClosed, true
	}
	return 0, false
}

// ParseLabOrderStatus converts a status string into a LabOrderStatus
func ParseLabOrderStatus(s string) (LabOrderStatus, bool) {
	switch s {
	case "ordered":
		return LabOrderStatusOrdered, true
	case "in-progress":
		return LabOrderStatusInProgress, true
	case "completed":
		return LabOrderStatusCompleted, true
	case "cancelled":
		return LabOrderStatusCancelled, true
	}
	return 0, false
}

// ParsePurchaseOrderStatus converts a status string into a PurchaseOrderStatus
func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, bool) {
	switch s {
	case "draft":
		return PurchaseOrderStatusDraft, true
	case "submitted":
		return PurchaseOrderStatusSubmitted, true
	case "approved":
		return PurchaseOrderStatusApproved, true
	case "received":
		return PurchaseOrderStatusReceived, true
	case "cancelled":
		return PurchaseOrderStatusCancelled, true
	}
	return 0, false
}
