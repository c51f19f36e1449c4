package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// In-memory repository fakes shared by the service tests.

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (r *fakePatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, params *repository.PatientFilterParams) ([]entity.Patient, int64, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePatientRepo) ListWithCursor(ctx context.Context, params *repository.PatientCursorFilterParams) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePatientRepo) CountRegisteredInYear(ctx context.Context, year int) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeBillRepo struct {
	bills    map[uuid.UUID]*entity.PatientBill
	services *fakeBillServiceRepo
}

func newFakeBillRepo(services *fakeBillServiceRepo) *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uuid.UUID]*entity.PatientBill), services: services}
}

func (r *fakeBillRepo) Create(ctx context.Context, bill *entity.PatientBill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	bill.CreatedAt = time.Now()
	copied := *bill
	r.bills[bill.ID] = &copied
	return nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error) {
	bill, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	copied := *bill
	return &copied, nil
}

func (r *fakeBillRepo) GetByBillNumber(ctx context.Context, billNumber string) (*entity.PatientBill, error) {
	for _, bill := range r.bills {
		if bill.BillNumber == billNumber {
			copied := *bill
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) GetWithServices(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error) {
	bill, err := r.GetByID(ctx, id)
	if bill == nil || err != nil {
		return bill, err
	}
	lines, _ := r.services.GetByBillID(ctx, id)
	bill.Services = lines
	return bill, nil
}

func (r *fakeBillRepo) Update(ctx context.Context, bill *entity.PatientBill) error {
	copied := *bill
	r.bills[bill.ID] = &copied
	return nil
}

func (r *fakeBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.bills, id)
	return nil
}

func (r *fakeBillRepo) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.PatientBill, int64, error) {
	var out []entity.PatientBill
	for _, bill := range r.bills {
		out = append(out, *bill)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBillRepo) FindActiveForPatient(ctx context.Context, patientID uuid.UUID) (*entity.PatientBill, error) {
	var newest *entity.PatientBill
	for _, bill := range r.bills {
		if bill.PatientID != patientID {
			continue
		}
		if newest == nil || bill.CreatedAt.After(newest.CreatedAt) {
			newest = bill
		}
	}
	if newest == nil {
		return nil, nil
	}
	copied := *newest
	return &copied, nil
}

func (r *fakeBillRepo) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, status enum.BillStatus) (bool, error) {
	bill, ok := r.bills[id]
	if !ok {
		return false, nil
	}
	if amount.GreaterThan(bill.BalanceAmount) {
		return false, nil
	}
	bill.PaidAmount = bill.PaidAmount.Add(amount)
	bill.BalanceAmount = bill.BalanceAmount.Sub(amount)
	bill.Status = status
	return true, nil
}

func (r *fakeBillRepo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	return int64(len(r.bills)), nil
}

type fakeBillServiceRepo struct {
	lines       map[uuid.UUID][]entity.BillService
	markPaidErr error
}

func newFakeBillServiceRepo() *fakeBillServiceRepo {
	return &fakeBillServiceRepo{lines: make(map[uuid.UUID][]entity.BillService)}
}

func (r *fakeBillServiceRepo) CreateBatch(ctx context.Context, services []entity.BillService) error {
	for _, svc := range services {
		if svc.ID == uuid.Nil {
			svc.ID = uuid.New()
		}
		r.lines[svc.BillID] = append(r.lines[svc.BillID], svc)
	}
	return nil
}

func (r *fakeBillServiceRepo) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillService, error) {
	out := append([]entity.BillService(nil), r.lines[billID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeBillServiceRepo) MarkPaidByPositions(ctx context.Context, billID uuid.UUID, positions []int, paidAt time.Time) error {
	if r.markPaidErr != nil {
		return r.markPaidErr
	}
	wanted := make(map[int]bool, len(positions))
	for _, pos := range positions {
		wanted[pos] = true
	}
	lines := r.lines[billID]
	for i := range lines {
		if wanted[lines[i].Position] {
			lines[i].Paid = true
			at := paidAt
			lines[i].PaidAt = &at
		}
	}
	return nil
}

func (r *fakeBillServiceRepo) MaxPosition(ctx context.Context, billID uuid.UUID) (int, error) {
	max := -1
	for _, line := range r.lines[billID] {
		if line.Position > max {
			max = line.Position
		}
	}
	return max, nil
}

func (r *fakeBillServiceRepo) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	delete(r.lines, billID)
	return nil
}

type fakeReceiptRepo struct {
	receipts map[uuid.UUID]*entity.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[uuid.UUID]*entity.Receipt)}
}

func (r *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = time.Now()
	r.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.receipts[id], nil
}

func (r *fakeReceiptRepo) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error) {
	for _, receipt := range r.receipts {
		if receipt.ReceiptNumber == receiptNumber {
			return receipt, nil
		}
	}
	return nil, nil
}

func (r *fakeReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	r.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) List(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var out []entity.Receipt
	for _, receipt := range r.receipts {
		out = append(out, *receipt)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReceiptRepo) ListWithCursor(ctx context.Context, params *repository.ReceiptCursorFilterParams) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, receipt := range r.receipts {
		out = append(out, *receipt)
	}
	return out, nil
}

func (r *fakeReceiptRepo) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, receipt := range r.receipts {
		if receipt.BillID == billID {
			out = append(out, *receipt)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) SumForCashierWindow(ctx context.Context, cashierID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, receipt := range r.receipts {
		if receipt.CashierID != cashierID || receipt.Status != enum.ReceiptStatusActive {
			continue
		}
		if receipt.CreatedAt.Before(from) || !receipt.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(receipt.PaymentAmount)
		count++
	}
	return total, count, nil
}

func (r *fakeReceiptRepo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	return int64(len(r.receipts)), nil
}

type fakeShiftRepo struct {
	shifts map[uuid.UUID]*entity.CashierShift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*entity.CashierShift)}
}

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.CashierShift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	r.shifts[shift.ID] = shift
	return nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashierShift, error) {
	return r.shifts[id], nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.CashierShift) error {
	r.shifts[shift.ID] = shift
	return nil
}

func (r *fakeShiftRepo) GetOpenForCashier(ctx context.Context, cashierID uuid.UUID) (*entity.CashierShift, error) {
	for _, shift := range r.shifts {
		if shift.CashierID == cashierID && shift.Status == enum.ShiftStatusOpen {
			return shift, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) List(ctx context.Context, params *repository.ShiftFilterParams) ([]entity.CashierShift, int64, error) {
	var out []entity.CashierShift
	for _, shift := range r.shifts {
		out = append(out, *shift)
	}
	return out, int64(len(out)), nil
}

type fakeLedgerRepo struct {
	accounts []*entity.LedgerAccount
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (r *fakeLedgerRepo) Create(ctx context.Context, account *entity.LedgerAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *fakeLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerAccount, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, nil
}

// GetByCode resolves duplicates to the oldest account, insertion order here
func (r *fakeLedgerRepo) GetByCode(ctx context.Context, code string) (*entity.LedgerAccount, error) {
	for _, account := range r.accounts {
		if account.AccountCode == code {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) Update(ctx context.Context, account *entity.LedgerAccount) error {
	for i, existing := range r.accounts {
		if existing.ID == account.ID {
			r.accounts[i] = account
			return nil
		}
	}
	return nil
}

func (r *fakeLedgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, account := range r.accounts {
		if account.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeLedgerRepo) List(ctx context.Context) ([]entity.LedgerAccount, error) {
	out := make([]entity.LedgerAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, *account)
	}
	return out, nil
}

func (r *fakeLedgerRepo) GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.LedgerAccount, error) {
	var out []entity.LedgerAccount
	for _, account := range r.accounts {
		if account.ParentID != nil && *account.ParentID == parentID {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	children, _ := r.GetChildren(ctx, parentID)
	return int64(len(children)), nil
}

func (r *fakeLedgerRepo) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	for _, account := range r.accounts {
		if account.ID == id {
			account.Balance = account.Balance.Add(delta)
			return nil
		}
	}
	return nil
}

type fakeQueueRepo struct {
	entries         map[uuid.UUID]*entity.QueueEntry
	updateStatusErr error
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{entries: make(map[uuid.UUID]*entity.QueueEntry)}
}

func (r *fakeQueueRepo) Create(ctx context.Context, entry *entity.QueueEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.QueueEntry, error) {
	return r.entries[id], nil
}

func (r *fakeQueueRepo) Update(ctx context.Context, entry *entity.QueueEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeQueueRepo) List(ctx context.Context, params *repository.QueueFilterParams) ([]entity.QueueEntry, int64, error) {
	var out []entity.QueueEntry
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out, int64(len(out)), nil
}

func (r *fakeQueueRepo) NextQueueNumber(ctx context.Context, department string, date time.Time) (int, error) {
	max := 0
	for _, entry := range r.entries {
		if entry.Department == department && sameDay(entry.QueueDate, date) && entry.QueueNumber > max {
			max = entry.QueueNumber
		}
	}
	return max + 1, nil
}

func (r *fakeQueueRepo) FindWaitingForPatient(ctx context.Context, patientID uuid.UUID, date time.Time) (*entity.QueueEntry, error) {
	for _, entry := range r.entries {
		if entry.PatientID != patientID || !sameDay(entry.QueueDate, date) {
			continue
		}
		if entry.Status == enum.QueueStatusWaiting || entry.Status == enum.QueueStatusInProgress {
			return entry, nil
		}
	}
	return nil, nil
}

func (r *fakeQueueRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QueueStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	if entry, ok := r.entries[id]; ok {
		entry.Status = status
	}
	return nil
}

type fakeVisitRepo struct {
	visits map[uuid.UUID]*entity.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[uuid.UUID]*entity.Visit)}
}

func (r *fakeVisitRepo) Create(ctx context.Context, visit *entity.Visit) error {
	if visit.ID == uuid.Nil {
		visit.ID = uuid.New()
	}
	visit.CreatedAt = time.Now()
	r.visits[visit.ID] = visit
	return nil
}

func (r *fakeVisitRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	return r.visits[id], nil
}

func (r *fakeVisitRepo) Update(ctx context.Context, visit *entity.Visit) error {
	r.visits[visit.ID] = visit
	return nil
}

func (r *fakeVisitRepo) List(ctx context.Context, params *repository.VisitFilterParams) ([]entity.Visit, int64, error) {
	var out []entity.Visit
	for _, visit := range r.visits {
		out = append(out, *visit)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVisitRepo) GetByPatientID(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) ([]entity.Visit, int64, error) {
	var out []entity.Visit
	for _, visit := range r.visits {
		if visit.PatientID == patientID {
			out = append(out, *visit)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVisitRepo) GetOpenForPatient(ctx context.Context, patientID uuid.UUID) (*entity.Visit, error) {
	for _, visit := range r.visits {
		if visit.PatientID == patientID && visit.Status == enum.VisitStatusOpen {
			return visit, nil
		}
	}
	return nil, nil
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*entity.Supplier)}
}

func (r *fakeSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *fakeSupplierRepo) GetByEmail(ctx context.Context, email string) (*entity.Supplier, error) {
	for _, supplier := range r.suppliers {
		if supplier.Email != nil && *supplier.Email == email {
			return supplier, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var out []entity.Supplier
	for _, supplier := range r.suppliers {
		out = append(out, *supplier)
	}
	return out, int64(len(out)), nil
}

type fakeMedicationRepo struct {
	medications map[uuid.UUID]*entity.Medication
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{medications: make(map[uuid.UUID]*entity.Medication)}
}

func (r *fakeMedicationRepo) Create(ctx context.Context, medication *entity.Medication) error {
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	r.medications[medication.ID] = medication
	return nil
}

func (r *fakeMedicationRepo) CreateBatch(ctx context.Context, medications []entity.Medication) error {
	for i := range medications {
		med := medications[i]
		if med.ID == uuid.Nil {
			med.ID = uuid.New()
		}
		r.medications[med.ID] = &med
	}
	return nil
}

func (r *fakeMedicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	return r.medications[id], nil
}

func (r *fakeMedicationRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error) {
	var out []entity.Medication
	for _, id := range ids {
		if med, ok := r.medications[id]; ok {
			out = append(out, *med)
		}
	}
	return out, nil
}

func (r *fakeMedicationRepo) Update(ctx context.Context, medication *entity.Medication) error {
	r.medications[medication.ID] = medication
	return nil
}

func (r *fakeMedicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.medications, id)
	return nil
}

func (r *fakeMedicationRepo) List(ctx context.Context, params *repository.MedicationFilterParams) ([]entity.Medication, int64, error) {
	var out []entity.Medication
	for _, med := range r.medications {
		out = append(out, *med)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMedicationRepo) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	var out []entity.Medication
	for _, med := range r.medications {
		if med.Quantity <= med.QuantityAlert {
			out = append(out, *med)
		}
	}
	return out, nil
}

func (r *fakeMedicationRepo) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	med, ok := r.medications[id]
	if !ok || med.Quantity < amount {
		return false, nil
	}
	med.Quantity -= amount
	return true, nil
}

func (r *fakeMedicationRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, amount := range decrements {
		med, ok := r.medications[id]
		if !ok || med.Quantity < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, amount := range decrements {
		r.medications[id].Quantity -= amount
	}
	return nil, nil
}

func (r *fakeMedicationRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		if med, ok := r.medications[id]; ok {
			med.Quantity += amount
		}
	}
	return nil
}

type fakePurchaseOrderRepo struct {
	orders map[uuid.UUID]*entity.PurchaseOrder
	items  *fakePurchaseOrderItemRepo
}

func newFakePurchaseOrderRepo(items *fakePurchaseOrderItemRepo) *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{orders: make(map[uuid.UUID]*entity.PurchaseOrder), items: items}
}

func (r *fakePurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakePurchaseOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := r.GetByID(ctx, id)
	if order == nil || err != nil {
		return order, err
	}
	order.Items, _ = r.items.GetByOrderID(ctx, id)
	return order, nil
}

func (r *fakePurchaseOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.PurchaseOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseOrderRepo) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakePurchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakePurchaseOrderRepo) List(ctx context.Context, params *repository.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var out []entity.PurchaseOrder
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (r *fakePurchaseOrderRepo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	return int64(len(r.orders)), nil
}

type fakePurchaseOrderItemRepo struct {
	items map[uuid.UUID][]entity.PurchaseOrderItem
}

func newFakePurchaseOrderItemRepo() *fakePurchaseOrderItemRepo {
	return &fakePurchaseOrderItemRepo{items: make(map[uuid.UUID][]entity.PurchaseOrderItem)}
}

func (r *fakePurchaseOrderItemRepo) CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.PurchaseOrderID] = append(r.items[item.PurchaseOrderID], item)
	}
	return nil
}

func (r *fakePurchaseOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderItem, error) {
	return append([]entity.PurchaseOrderItem(nil), r.items[orderID]...), nil
}

func (r *fakePurchaseOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	delete(r.items, orderID)
	return nil
}

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *fakeExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	return r.expenses[id], nil
}

func (r *fakeExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) List(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var out []entity.Expense
	for _, expense := range r.expenses {
		out = append(out, *expense)
	}
	return out, int64(len(out)), nil
}

type fakeTransferRepo struct {
	transfers map[uuid.UUID]*entity.CashTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: make(map[uuid.UUID]*entity.CashTransfer)}
}

func (r *fakeTransferRepo) Create(ctx context.Context, transfer *entity.CashTransfer) error {
	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}
	r.transfers[transfer.ID] = transfer
	return nil
}

func (r *fakeTransferRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashTransfer, error) {
	return r.transfers[id], nil
}

func (r *fakeTransferRepo) List(ctx context.Context, params *pagination.PaginationParams, accountID *uuid.UUID) ([]entity.CashTransfer, int64, error) {
	var out []entity.CashTransfer
	for _, transfer := range r.transfers {
		if accountID != nil && transfer.FromAccountID != *accountID && transfer.ToAccountID != *accountID {
			continue
		}
		out = append(out, *transfer)
	}
	return out, int64(len(out)), nil
}

type fakeLabOrderRepo struct {
	orders map[uuid.UUID]*entity.LabOrder
	tests  *fakeLabTestRepo
}

func newFakeLabOrderRepo(tests *fakeLabTestRepo) *fakeLabOrderRepo {
	return &fakeLabOrderRepo{orders: make(map[uuid.UUID]*entity.LabOrder), tests: tests}
}

func (r *fakeLabOrderRepo) Create(ctx context.Context, order *entity.LabOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeLabOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeLabOrderRepo) GetWithTests(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error) {
	order, err := r.GetByID(ctx, id)
	if order == nil || err != nil {
		return order, err
	}
	order.Tests, _ = r.tests.GetByOrderID(ctx, id)
	return order, nil
}

func (r *fakeLabOrderRepo) Update(ctx context.Context, order *entity.LabOrder) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeLabOrderRepo) List(ctx context.Context, params *repository.LabOrderFilterParams) ([]entity.LabOrder, int64, error) {
	var out []entity.LabOrder
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLabOrderRepo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	return int64(len(r.orders)), nil
}

type fakeLabTestRepo struct {
	tests map[uuid.UUID]*entity.LabTest
}

func newFakeLabTestRepo() *fakeLabTestRepo {
	return &fakeLabTestRepo{tests: make(map[uuid.UUID]*entity.LabTest)}
}

func (r *fakeLabTestRepo) CreateBatch(ctx context.Context, tests []entity.LabTest) error {
	for i := range tests {
		test := tests[i]
		if test.ID == uuid.Nil {
			test.ID = uuid.New()
		}
		r.tests[test.ID] = &test
	}
	return nil
}

func (r *fakeLabTestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error) {
	return r.tests[id], nil
}

func (r *fakeLabTestRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.LabTest, error) {
	var out []entity.LabTest
	for _, test := range r.tests {
		if test.LabOrderID == orderID {
			out = append(out, *test)
		}
	}
	return out, nil
}

func (r *fakeLabTestRepo) Update(ctx context.Context, test *entity.LabTest) error {
	r.tests[test.ID] = test
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
