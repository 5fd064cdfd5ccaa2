package inspect

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/toki5537/skiplab/skiplist"
)

// Render 以表格呈現 skip list 的層級結構，由上而下每層一列，
// 欄位為底層節點順序；節點未參與該層時留空
func Render(a skiplist.Analyable, maxLevel, maxNodes int) string {
	lvl := min(maxLevel, a.Level())

	var nodes []skiplist.Nodelike
	for cur := a.Head().Next(0); cur != nil && len(nodes) < maxNodes; cur = cur.Next(0) {
		nodes = append(nodes, cur)
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)

	for i := lvl - 1; i >= 0; i-- {
		row := make([]string, 0, len(nodes)+1)
		row = append(row, fmt.Sprintf("level %d", i))
		for _, nd := range nodes {
			if nd.Height() > i {
				row = append(row, fmt.Sprintf("%d", nd.Key()))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
	return sb.String()
}

// CheckStruct 檢查 skip list 的結構是否正確：
// 底層鍵值嚴格遞增、節點高度不超過 level、
// 各層連結與底層走訪一致、head 高度恆等於 level
func CheckStruct(a skiplist.Analyable) error {
	head := a.Head()
	level := a.Level()

	if level < 1 {
		return errors.Errorf("level %d < 1", level)
	}
	if head.Height() != level {
		return errors.Errorf("head height %d != level %d", head.Height(), level)
	}

	// list[i] 記錄第 i 層最後走訪到的節點
	list := make([]skiplist.Nodelike, level)
	for i := range list {
		list[i] = head
	}

	count := 0
	var prev skiplist.K
	for cur := head.Next(0); cur != nil; cur = cur.Next(0) {
		if count > 0 && prev >= cur.Key() {
			return errors.Errorf("keys out of order at level 0: %d then %d", prev, cur.Key())
		}
		prev = cur.Key()

		h := cur.Height()
		if h > level {
			return errors.Errorf("node %d height %d exceeds level %d", cur.Key(), h, level)
		}
		for i := 1; i < h; i++ {
			nxt := list[i].Next(i)
			if nxt != cur {
				return errors.Errorf("level %d link skips node %d", i, cur.Key())
			}
			list[i] = cur
		}
		count++
	}

	if count != a.Size() {
		return errors.Errorf("size %d but %d nodes reachable at level 0", a.Size(), count)
	}
	if level > 1 && head.Next(level-1) == nil {
		return errors.Errorf("top level %d is empty", level-1)
	}
	return nil
}

// FindStep 計算找到指定 key 的總步數和各層步數
func FindStep(a skiplist.Analyable, key skiplist.K) (int, []int) {
	cur := a.Head()
	level := a.Level()
	stepsPerLevel := make([]int, level)
	totalSteps := 0

	for i := level - 1; i >= 0; i-- {
		levelSteps := 0
		for {
			nxt := cur.Next(i)
			if nxt == nil || nxt.Key() >= key {
				break
			}
			cur = nxt
			levelSteps++
		}

		if nxt := cur.Next(i); nxt != nil && nxt.Key() == key {
			stepsPerLevel[i] = levelSteps + 1
			return totalSteps + levelSteps + 1, stepsPerLevel
		}

		stepsPerLevel[i] = levelSteps
		totalSteps += levelSteps + 1 // 加上向下移動
	}
	return totalSteps, stepsPerLevel
}

// CountLevel 統計每層的節點數量
func CountLevel(a skiplist.Analyable) []int {
	counts := make([]int, a.Level())
	for cur := a.Head().Next(0); cur != nil; cur = cur.Next(0) {
		for i := 0; i < cur.Height() && i < len(counts); i++ {
			counts[i]++
		}
	}
	return counts
}
