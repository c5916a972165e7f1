package engine

import (
	"github.com/mesh-intelligence/payroll/pkg/types"
)

func str(v string) types.Value { return types.NewString(v) }
func num(v float64) types.Value { return types.NewNumber(v) }

// amounts is the three-record collection used by the sort scenarios.
func amounts() []types.Record {
	return []types.Record{
		{"id": num(1), "name": str("Bob"), "amount": num(50)},
		{"id": num(2), "name": str("al"), "amount": num(5)},
		{"id": num(3), "name": str("Cy"), "amount": num(5)},
	}
}

// employees mirrors the shape of the seeded employees dataset.
func employees() []types.Record {
	return []types.Record{
		{"empId": str("E1001"), "name": str("John Smith"), "designation": str("Software Engineer"), "department": str("Technology"), "location": str("Mumbai"), "contact": str("+91 9876543210"), "grossCTC": num(1200000), "status": str("Active"), "progress": num(85)},
		{"empId": str("E1002"), "name": str("Priya Sharma"), "designation": str("Senior Developer"), "department": str("Technology"), "location": str("Bangalore"), "contact": str("+91 9876543211"), "grossCTC": num(1500000), "status": str("Active"), "progress": num(92)},
		{"empId": str("T1001"), "name": str("Rajesh Kumar"), "designation": str("Sales Executive"), "department": str("Sales"), "location": str("Delhi"), "contact": str("+91 9876543212"), "grossCTC": num(800000), "status": str("Active"), "progress": num(78)},
		{"empId": str("E1003"), "name": str("Sarah Wilson"), "designation": str("Team Lead"), "department": str("Technology"), "location": str("Mumbai"), "contact": str("+91 9876543213"), "grossCTC": num(2000000), "status": str("Active"), "progress": num(96)},
		{"empId": str("E1004"), "name": str("Michael Chen"), "designation": str("Sales Manager"), "department": str("Sales"), "location": str("Chennai"), "contact": str("+91 9876543214"), "grossCTC": num(1800000), "status": str("Active"), "progress": num(88)},
		{"empId": str("E1005"), "name": str("Lisa Anderson"), "designation": str("HR Specialist"), "department": str("HR"), "location": str("Pune"), "contact": str("+91 9876543215"), "grossCTC": num(900000), "status": str("Inactive"), "progress": num(65)},
	}
}

func employeeColumns() []types.ColumnSpec {
	off := false
	return []types.ColumnSpec{
		{Key: "empId", Label: "Employee ID"},
		{Key: "name", Label: "Employee"},
		{Key: "department", Label: "Department"},
		{Key: "contact", Label: "Contact", MobileHidden: true},
		{Key: "grossCTC", Label: "Annual CTC"},
		{Key: "status", Label: "Status", Sortable: &off},
	}
}

// field projects one field of each record as a string.
func field(recs []types.Record, key string) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Get(key).String()
	}
	return out
}
